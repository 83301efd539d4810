// Package docs holds the Swagger document served at /api-docs.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new administrator",
                "parameters": [
                    {"description": "Administrator details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/enterprise/registerEnterprise": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["enterprise"],
                "summary": "Register an enterprise",
                "parameters": [
                    {"description": "Enterprise details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Enterprise"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerEnterpriseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/enterprise/list": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["enterprise"],
                "summary": "List enterprises",
                "parameters": [
                    {"type": "string", "description": "Exact category", "name": "category", "in": "query"},
                    {"enum": ["Alto", "Medio", "Bajo"], "type": "string", "name": "impactLevel", "in": "query"},
                    {"minimum": 0, "type": "integer", "description": "Minimum years of experience", "name": "yearsOfExperience", "in": "query"},
                    {"enum": ["nameAZ", "nameZA", "experience"], "type": "string", "name": "sort", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 15, "name": "limite", "in": "query"},
                    {"minimum": 0, "type": "integer", "default": 0, "name": "desde", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listEnterprisesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/enterprise/updateEnterprise/{uid}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["enterprise"],
                "summary": "Update an enterprise",
                "parameters": [
                    {"type": "string", "description": "Enterprise id", "name": "uid", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Enterprise"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.updateEnterpriseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/enterprise/generateReport": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["enterprise"],
                "summary": "Export enterprises to a spreadsheet",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"enum": ["Alto", "Medio", "Bajo"], "type": "string", "name": "impactLevel", "in": "query"},
                    {"minimum": 0, "type": "integer", "name": "yearsOfExperience", "in": "query"},
                    {"enum": ["nameAZ", "nameZA", "experience"], "type": "string", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validation.Violation"}}
            }
        },
        "validation.Violation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "msg": {"type": "string"}
            }
        },
        "domain.SocialMedia": {
            "type": "object",
            "properties": {
                "facebook": {"type": "string"},
                "instagram": {"type": "string"}
            }
        },
        "domain.Enterprise": {
            "type": "object",
            "properties": {
                "uid": {"type": "string"},
                "name": {"type": "string", "maxLength": 50},
                "email": {"type": "string"},
                "phone": {"type": "string", "minLength": 8, "maxLength": 15},
                "address": {"type": "string", "maxLength": 100},
                "website": {"type": "string"},
                "impactLevel": {"type": "string", "enum": ["Alto", "Medio", "Bajo"]},
                "foundingYear": {"type": "integer", "minimum": 1800},
                "yearsOfExperience": {"type": "integer"},
                "category": {"type": "string"},
                "description": {"type": "string", "maxLength": 500},
                "socialMedia": {"$ref": "#/definitions/domain.SocialMedia"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["name", "email", "password", "phone"],
            "properties": {
                "name": {"type": "string", "maxLength": 25},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "phone": {"type": "string", "minLength": 8, "maxLength": 8}
            }
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "userDetails": {"type": "object", "properties": {"token": {"type": "string"}}}
            }
        },
        "handler.registerEnterpriseResponse": {
            "type": "object",
            "properties": {
                "msg": {"type": "string"},
                "enterprise": {"$ref": "#/definitions/domain.Enterprise"}
            }
        },
        "handler.listEnterprisesResponse": {
            "type": "object",
            "properties": {
                "enterprises": {"type": "array", "items": {"$ref": "#/definitions/domain.Enterprise"}}
            }
        },
        "handler.updateEnterpriseResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "msg": {"type": "string"},
                "enterprise": {"$ref": "#/definitions/domain.Enterprise"}
            }
        },
        "handler.reportResponse": {
            "type": "object",
            "properties": {
                "msg": {"type": "string"},
                "downloadUrl": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/CoperexCaseAnalysis/v1",
	Schemes:          []string{},
	Title:            "Coperex Case Analysis API",
	Description:      "Administration API for registering trade-fair enterprises and exporting reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
