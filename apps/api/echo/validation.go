package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/validation"
)

type validationApi struct {
	conf       *core.Config
	svc        *validation.Service
	mailSvc    core.EmailService
	validate   *validator.Validate
	translator ut.Translator
}

func registerValidationAPI(g *echo.Group, jwt echo.MiddlewareFunc, api *validationApi) {
	vg := g.Group("/validation", jwt)
	vg.POST("/:kind", api.validateOne)
	vg.POST("/:kind/batch", api.validateBatch)
}

// Requests & Responses

type (
	kindParam struct {
		Kind string `json:"kind" validate:"required,entitykind"`
	}

	batchRequest struct {
		Records     json.RawMessage `json:"records" validate:"required"`
		NotifyEmail string          `json:"notify_email" validate:"omitempty,email"`
	}

	resultResponse struct {
		IsValid       bool               `json:"is_valid"`
		Errors        []validation.Issue `json:"errors"`
		Warnings      []validation.Issue `json:"warnings"`
		Suggestions   []validation.Issue `json:"suggestions"`
		CorrectedData validation.Record  `json:"corrected_data,omitempty"`
	}

	batchResponse struct {
		Report  validation.Report `json:"report"`
		Results []resultResponse  `json:"results"`
	}
)

func toResultResponse(res validation.Result) resultResponse {
	return resultResponse{
		IsValid:       res.IsValid(),
		Errors:        issuesOrEmpty(res.Errors),
		Warnings:      issuesOrEmpty(res.Warnings),
		Suggestions:   issuesOrEmpty(res.Suggestions),
		CorrectedData: res.CorrectedData,
	}
}

// issuesOrEmpty keeps JSON arrays instead of nulls.
func issuesOrEmpty(issues []validation.Issue) []validation.Issue {
	if issues == nil {
		return []validation.Issue{}
	}
	return issues
}

// Handlers

func (api *validationApi) validateOne(ctx echo.Context) error {
	kind, err := api.entityKind(ctx)
	if err != nil {
		return err
	}

	var rec validation.Record
	switch kind {
	case validation.KindStudent:
		var data validation.StudentRecord
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to StudentRecord")
		}
		rec = data
	case validation.KindTeacher:
		var data validation.TeacherRecord
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to TeacherRecord")
		}
		rec = data
	}

	res, err := api.svc.Validate(ctx.Request().Context(), rec)
	if err != nil {
		return errors.Wrap(err, "validating record")
	}
	return ctx.JSON(http.StatusOK, toResultResponse(res))
}

func (api *validationApi) validateBatch(ctx echo.Context) error {
	kind, err := api.entityKind(ctx)
	if err != nil {
		return err
	}

	var req batchRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to batchRequest")
	}
	if err := api.validate.Struct(&req); err != nil {
		return err
	}

	recs, err := api.decodeRecords(kind, req.Records)
	if err != nil {
		return err
	}
	if limit := api.conf.Validation.BatchLimit; len(recs) > limit {
		return core.NewValidationError(nil, core.FieldError{
			Field: "records",
			Error: fmt.Sprintf("batch exceeds the %d record limit", limit),
		})
	}

	results, err := api.svc.ValidateBatch(ctx.Request().Context(), recs)
	if err != nil {
		return errors.Wrap(err, "validating batch")
	}

	report := validation.NewReport(kind, results)
	if to := reportRecipient(ctx, req.NotifyEmail); to != "" {
		api.mailSvc.SendMessages(report.EmailMessage(mail.Address{Address: to}))
	}

	resp := batchResponse{
		Report:  report,
		Results: make([]resultResponse, 0, len(results)),
	}
	for _, res := range results {
		resp.Results = append(resp.Results, toResultResponse(res))
	}
	return ctx.JSON(http.StatusOK, resp)
}

// reportRecipient resolves who gets the batch report email: the explicit
// notify_email when provided, else the authenticated user's email.
func reportRecipient(ctx echo.Context, notifyEmail string) string {
	if notifyEmail != "" {
		return notifyEmail
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return ""
	}
	return claims.Email
}

// entityKind validates the :kind path param against the known entity kinds.
func (api *validationApi) entityKind(ctx echo.Context) (validation.EntityKind, error) {
	param := kindParam{Kind: ctx.Param("kind")}
	if err := api.validate.Struct(&param); err != nil {
		return "", err
	}
	return validation.EntityKind(param.Kind), nil
}

func (api *validationApi) decodeRecords(kind validation.EntityKind, raw json.RawMessage) ([]validation.Record, error) {
	if !kind.IsValid() {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "kind", Error: "unknown entity kind"})
	}

	var recs []validation.Record
	switch kind {
	case validation.KindStudent:
		var data []validation.StudentRecord
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, core.NewValidationError(errors.Wrap(err, "records must be a list of student records"))
		}
		recs = make([]validation.Record, 0, len(data))
		for _, rec := range data {
			recs = append(recs, rec)
		}
	case validation.KindTeacher:
		var data []validation.TeacherRecord
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, core.NewValidationError(errors.Wrap(err, "records must be a list of teacher records"))
		}
		recs = make([]validation.Record, 0, len(data))
		for _, rec := range data {
			recs = append(recs, rec)
		}
	}
	if len(recs) == 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "records", Error: "at least one record is required"})
	}
	return recs, nil
}
