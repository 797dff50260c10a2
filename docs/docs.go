// Package docs is generated by swag init; regenerate with
// `swag init -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {"post": {"tags": ["auth"], "summary": "User login", "responses": {"200": {"description": "OK"}}}},
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new organization and its first user", "responses": {"201": {"description": "Created"}}}},
        "/forms": {
            "get": {"tags": ["forms"], "summary": "List the caller's visible forms", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["forms"], "summary": "Create a form (version 1 of a new lineage)", "responses": {"201": {"description": "Created"}}}
        },
        "/forms/trash": {"get": {"tags": ["forms"], "summary": "List soft-deleted forms of the tenant", "responses": {"200": {"description": "OK"}}}},
        "/forms/{id}": {
            "get": {"tags": ["forms"], "summary": "Get a form version with its questions", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["forms"], "summary": "Edit a form version", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["forms"], "summary": "Move a form version to the trash", "responses": {"204": {"description": "No Content"}}}
        },
        "/forms/{id}/permanent": {"delete": {"tags": ["forms"], "summary": "Permanently delete a form version with its submissions", "responses": {"204": {"description": "No Content"}}}},
        "/forms/{id}/restore": {"post": {"tags": ["forms"], "summary": "Restore a form version from the trash", "responses": {"204": {"description": "No Content"}}}},
        "/forms/{id}/stats": {"get": {"tags": ["submissions"], "summary": "Answer distribution of a form version", "responses": {"200": {"description": "OK"}}}},
        "/forms/{id}/submissions": {"get": {"tags": ["submissions"], "summary": "List the submissions of a form version", "responses": {"200": {"description": "OK"}}}},
        "/forms/{id}/submit": {"post": {"tags": ["submissions"], "summary": "Submit answers to a form version", "responses": {"201": {"description": "Created"}}}},
        "/forms/{id}/versions": {"get": {"tags": ["forms"], "summary": "List every version of the form's lineage", "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["ops"], "summary": "Liveness and database check", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "formflow API",
	Description:      "Multi-tenant form builder with versioned forms and submission analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
