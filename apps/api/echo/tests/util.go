package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/trezcool/mahudhurio/apps/api/echo"
	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/validation"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
	testutil "github.com/trezcool/mahudhurio/tests"
)

type httpErr struct {
	Error string `json:"error"`
}

func setup(t *testing.T) (Server, *core.Config) {
	t.Helper()

	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Validation.BatchLimit = 3 // small enough to exercise the cap

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	testutil.SeedReferenceData(db)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        core.NopLogger{},
		ValidationSvc: validation.NewService(dummydb.NewReferenceRepository(db), nil),
		MailSvc:       emailsvc.NewConsoleServiceMock(conf),
		Validate:      validate,
		Translator:    translator,
	})
	return server, conf
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func authToken(t *testing.T, conf *core.Config) string {
	t.Helper()
	token, err := GenerateToken(conf, NewClaims(conf, "1", "registrar", "registrar@university.edu", "admin:"))
	if err != nil {
		t.Fatalf("authToken() failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal() failed: %v", err)
	}
	return data
}

func unmarshal(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("unmarshal() failed: %v\nbody: %s", err, data)
	}
}
