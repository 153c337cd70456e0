package validation

import (
	"regexp"
	"strconv"
)

// Field format patterns. Names must be title-cased words so that sloppy
// lower-case entries trip the format rule and pick up an auto-correction.
var (
	nameRegex       = regexp.MustCompile(`^[A-Z][a-zA-Z'.-]*(?:\s[A-Z][a-zA-Z'.-]*)*$`)
	rollNumberRegex = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	departmentRegex = regexp.MustCompile(`^[A-Za-z&][A-Za-z&\s]*$`)
	phoneRegex      = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	employeeIDRegex = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)
)

const (
	minSemester = 1
	maxSemester = 8
)

// semesterCheck accepts exactly the strings "1".."8".
func semesterCheck(value string, _ Record) CheckResult {
	n, err := strconv.Atoi(value)
	if err == nil && n >= minSemester && n <= maxSemester && value == strconv.Itoa(n) {
		return CheckResult{Valid: true}
	}
	return CheckResult{
		Message: "semester must be a number between 1 and 8",
		Code:    CodeInvalidSemester,
	}
}

// studentCatalog is the fixed, ordered rule list for student records.
var studentCatalog = []Rule{
	{Field: FieldName, Kind: ruleRequired, Message: "student name is required"},
	{Field: FieldName, Kind: ruleFormat, Pattern: nameRegex, Class: className,
		Message: "name must be title-cased words (letters, apostrophes, dots and hyphens)"},

	{Field: FieldRollNumber, Kind: ruleRequired, Message: "roll number is required"},
	{Field: FieldRollNumber, Kind: ruleFormat, Pattern: rollNumberRegex, Class: classIdentifier,
		Message: "roll number must be 4-12 upper-case letters and digits"},
	{Field: FieldRollNumber, Kind: ruleUnique, Unique: uniqueRollNumbers,
		Message: "a student with this roll number already exists"},

	{Field: FieldEmail, Kind: ruleRequired, Message: "email is required"},
	{Field: FieldEmail, Kind: ruleFormat, Pattern: emailRegex, Class: classEmail,
		Message: "not a valid email address"},
	{Field: FieldEmail, Kind: ruleUnique, Unique: uniqueEmails,
		Message: "an account with this email already exists"},

	{Field: FieldDepartment, Kind: ruleRequired, Message: "department is required"},
	{Field: FieldDepartment, Kind: ruleFormat, Pattern: departmentRegex, Class: classDepartment,
		Message: "department must contain only letters, spaces and '&'"},
	{Field: FieldDepartment, Kind: ruleReference, Ref: refDepartments,
		Message: "unknown department"},

	{Field: FieldSection, Kind: ruleReference, Ref: refSections,
		Message: "unknown section"},

	{Field: FieldSemester, Kind: ruleRequired, Message: "semester is required"},
	{Field: FieldSemester, Kind: ruleCustom, Check: semesterCheck,
		Message: "semester must be a number between 1 and 8"},

	{Field: FieldContactNumber, Kind: ruleFormat, Pattern: phoneRegex, Class: classPhone,
		Message: "contact number must be 10-15 digits, optionally prefixed with '+'"},
	{Field: FieldParentContact, Kind: ruleFormat, Pattern: phoneRegex, Class: classPhone,
		Message: "parent contact must be 10-15 digits, optionally prefixed with '+'"},
}

// teacherCatalog is the fixed, ordered rule list for teacher records.
var teacherCatalog = []Rule{
	{Field: FieldName, Kind: ruleRequired, Message: "teacher name is required"},
	{Field: FieldName, Kind: ruleFormat, Pattern: nameRegex, Class: className,
		Message: "name must be title-cased words (letters, apostrophes, dots and hyphens)"},

	{Field: FieldEmail, Kind: ruleRequired, Message: "email is required"},
	{Field: FieldEmail, Kind: ruleFormat, Pattern: emailRegex, Class: classEmail,
		Message: "not a valid email address"},
	{Field: FieldEmail, Kind: ruleUnique, Unique: uniqueEmails,
		Message: "an account with this email already exists"},

	{Field: FieldDepartment, Kind: ruleRequired, Message: "department is required"},
	{Field: FieldDepartment, Kind: ruleFormat, Pattern: departmentRegex, Class: classDepartment,
		Message: "department must contain only letters, spaces and '&'"},
	{Field: FieldDepartment, Kind: ruleReference, Ref: refDepartments,
		Message: "unknown department"},

	{Field: FieldEmployeeID, Kind: ruleRequired, Message: "employee ID is required"},
	{Field: FieldEmployeeID, Kind: ruleFormat, Pattern: employeeIDRegex, Class: classIdentifier,
		Message: "employee ID must be 4-12 upper-case letters and digits"},
	{Field: FieldEmployeeID, Kind: ruleUnique, Unique: uniqueRollNumbers,
		Message: "a staff member with this employee ID already exists"},
}

// catalogFor selects a catalog by entity kind; selection is by data, not
// polymorphic dispatch.
func catalogFor(kind EntityKind) []Rule {
	if kind == KindTeacher {
		return teacherCatalog
	}
	return studentCatalog
}
