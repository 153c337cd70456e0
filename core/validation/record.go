package validation

// EntityKind selects which rule catalog and cross-field checks apply to a Record.
type EntityKind string

const (
	KindStudent EntityKind = "student"
	KindTeacher EntityKind = "teacher"
)

func (k EntityKind) IsValid() bool {
	return k == KindStudent || k == KindTeacher
}

// Field names shared by the rule catalogs, cross-field checks and corrections.
const (
	FieldName          = "name"
	FieldRollNumber    = "roll_number"
	FieldEmail         = "email"
	FieldDepartment    = "department"
	FieldSection       = "section"
	FieldSemester      = "semester"
	FieldContactNumber = "contact_number"
	FieldParentContact = "parent_contact"
	FieldEmployeeID    = "employee_id"
)

// Record is one candidate entry submitted for validation, prior to persistence.
// An empty field is treated as absent. The engine never mutates a Record;
// corrections are returned as a separate copy on Result.CorrectedData.
type Record interface {
	Kind() EntityKind
	Field(name string) string

	// apply returns a copy of the record with the corrections written in.
	apply(corrections map[string]string) Record
}

type StudentRecord struct {
	Name          string `json:"name"`
	RollNumber    string `json:"roll_number"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Section       string `json:"section"`
	Semester      string `json:"semester"`
	ContactNumber string `json:"contact_number"`
	ParentContact string `json:"parent_contact"`
}

var _ Record = StudentRecord{}

func (r StudentRecord) Kind() EntityKind { return KindStudent }

func (r StudentRecord) Field(name string) string {
	switch name {
	case FieldName:
		return r.Name
	case FieldRollNumber:
		return r.RollNumber
	case FieldEmail:
		return r.Email
	case FieldDepartment:
		return r.Department
	case FieldSection:
		return r.Section
	case FieldSemester:
		return r.Semester
	case FieldContactNumber:
		return r.ContactNumber
	case FieldParentContact:
		return r.ParentContact
	}
	return ""
}

func (r StudentRecord) apply(corrections map[string]string) Record {
	for field, value := range corrections {
		switch field {
		case FieldName:
			r.Name = value
		case FieldRollNumber:
			r.RollNumber = value
		case FieldEmail:
			r.Email = value
		case FieldDepartment:
			r.Department = value
		case FieldSection:
			r.Section = value
		case FieldSemester:
			r.Semester = value
		case FieldContactNumber:
			r.ContactNumber = value
		case FieldParentContact:
			r.ParentContact = value
		}
	}
	return r
}

type TeacherRecord struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	EmployeeID string `json:"employee_id"`
}

var _ Record = TeacherRecord{}

func (r TeacherRecord) Kind() EntityKind { return KindTeacher }

func (r TeacherRecord) Field(name string) string {
	switch name {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldDepartment:
		return r.Department
	case FieldEmployeeID:
		return r.EmployeeID
	}
	return ""
}

func (r TeacherRecord) apply(corrections map[string]string) Record {
	for field, value := range corrections {
		switch field {
		case FieldName:
			r.Name = value
		case FieldEmail:
			r.Email = value
		case FieldDepartment:
			r.Department = value
		case FieldEmployeeID:
			r.EmployeeID = value
		}
	}
	return r
}
