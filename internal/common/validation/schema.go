package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema names for Directory Service response bodies.
const (
	SchemaUserList      = "userList"
	SchemaFranchiseList = "franchiseList"
	SchemaAuthResponse  = "authResponse"
	SchemaUser          = "user"
)

const idSchema = `{"type": ["string", "integer"]}`

const userSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": ` + idSchema + `,
		"name": {"type": ["string", "null"]},
		"email": {"type": ["string", "null"]},
		"roles": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"required": ["role"],
				"properties": {
					"role": {"type": "string", "enum": ["diner", "admin", "franchisee"]}
				}
			}
		}
	}
}`

var schemaSources = map[string]string{
	SchemaUser: userSchema,
	SchemaUserList: `{
		"type": "object",
		"required": ["users"],
		"properties": {
			"users": {"type": "array", "items": ` + userSchema + `}
		}
	}`,
	SchemaFranchiseList: `{
		"type": "object",
		"required": ["franchises", "more"],
		"properties": {
			"more": {"type": "boolean"},
			"franchises": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["id", "name"],
					"properties": {
						"id": ` + idSchema + `,
						"name": {"type": "string"},
						"admins": {"type": ["array", "null"]},
						"stores": {
							"type": ["array", "null"],
							"items": {
								"type": "object",
								"required": ["id", "name"],
								"properties": {
									"id": ` + idSchema + `,
									"name": {"type": "string"},
									"totalRevenue": {"type": ["number", "null"]}
								}
							}
						}
					}
				}
			}
		}
	}`,
	SchemaAuthResponse: `{
		"type": "object",
		"required": ["user", "token"],
		"properties": {
			"token": {"type": "string", "minLength": 1},
			"user": ` + userSchema + `
		}
	}`,
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

func schemas() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*gojsonschema.Schema, len(schemaSources))
		for name, src := range schemaSources {
			s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
	})
	return compiled, compileErr
}

// ValidateResponse checks a raw JSON body against the named response schema.
func ValidateResponse(name string, body []byte) (*ValidationResult, error) {
	all, err := schemas()
	if err != nil {
		return nil, err
	}
	schema, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			return true
		}
	}
	return false
}
