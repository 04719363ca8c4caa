// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Coded error type shared by the engine, loaders and MCP responses.

package errors

import (
	stderrors "errors"
	"fmt"
	"regexp"
)

type ErrorCode string

const (
	CodeConfiguration   ErrorCode = "CONFIGURATION_ERROR"
	CodeSchema          ErrorCode = "SCHEMA_ERROR"
	CodeInvalidInput    ErrorCode = "INVALID_INPUT"
	CodeDataUnavailable ErrorCode = "DATA_UNAVAILABLE"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

type SiteError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *SiteError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func New(code ErrorCode, msg, hint string, details map[string]any) *SiteError {
	return &SiteError{Code: code, Message: msg, Hint: hint, Details: sanitize(details)}
}

// NewConfiguration reports an invalid scenario or engine configuration.
func NewConfiguration(msg, hint string, details map[string]any) *SiteError {
	return New(CodeConfiguration, msg, hint, details)
}

// NewSchema reports a required column missing from the node table.
func NewSchema(column string) *SiteError {
	return New(CodeSchema, "required column missing: "+column, "check the node dataset header", map[string]any{"column": column})
}

func NewInvalidInput(msg, hint string, details map[string]any) *SiteError {
	return New(CodeInvalidInput, msg, hint, details)
}

func NewDataUnavailable(source string, err error) *SiteError {
	details := map[string]any{"source": source}
	if err != nil {
		details["cause"] = err.Error()
	}
	return New(CodeDataUnavailable, "node dataset unavailable", "check nodes_source", details)
}

func NewNotFound(what, id string) *SiteError {
	return New(CodeNotFound, what+" not found", "", map[string]any{"id": id})
}

func NewInternal(err error) *SiteError {
	if err == nil {
		return New(CodeInternalError, "internal error", "see logs", nil)
	}
	return New(CodeInternalError, "internal error", "see logs", map[string]any{"cause": scrub(err.Error())})
}

// ToToolError converts any error to a SiteError;
// unknown errors are wrapped as internal error with scrubbed message.
func ToToolError(err error) *SiteError {
	if err == nil {
		return nil
	}
	var se *SiteError
	if stderrors.As(err, &se) {
		return se
	}
	return NewInternal(err)
}

// HasCode reports whether err is a SiteError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var se *SiteError
	return stderrors.As(err, &se) && se.Code == code
}

func IsConfiguration(err error) bool { return HasCode(err, CodeConfiguration) }

func IsSchema(err error) bool { return HasCode(err, CodeSchema) }

func sanitize(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		out[k] = scrub(fmt.Sprint(v))
	}
	return out
}

var (
	dsnUserInfo = regexp.MustCompile(`(postgres(?:ql)?://)[^@/\s]+@`)
	dsnPassword = regexp.MustCompile(`(?i)((?:password|pwd)=)[^\s&;]+`)
)

// scrub best-effort masks credentials embedded in dataset DSNs.
func scrub(s string) string {
	out := dsnUserInfo.ReplaceAllString(s, "${1}***@")
	return dsnPassword.ReplaceAllString(out, "${1}***")
}
