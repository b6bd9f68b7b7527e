// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler
// annotations.
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
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "Registration details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.registerRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/navigate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Check screen access",
                "parameters": [
                    {"type": "string", "description": "Screen path, e.g. /admin", "name": "path", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.navigateResponse"}}
                }
            }
        },
        "/api/location": {
            "get": {
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Visitor location",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.LocationData"}}
                }
            }
        },
        "/api/services": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List services",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.localizedService"}}}
                }
            }
        },
        "/api/services/{id}/inquiries": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inquiries"],
                "summary": "Request a service",
                "parameters": [
                    {"type": "string", "description": "Service id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Deduplicates retried submissions", "name": "Idempotency-Key", "in": "header"},
                    {
                        "description": "Inquiry",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.createInquiryRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.ServiceInquiry"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.Identity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "created_at": {"type": "string"},
                "avatar_url": {"type": "string"},
                "bsc_major": {"type": "string"},
                "graduation_year": {"type": "string"}
            }
        },
        "domain.LocationData": {
            "type": "object",
            "properties": {
                "country": {"type": "string"},
                "country_code": {"type": "string"},
                "currency": {"type": "string"},
                "currency_symbol": {"type": "string"},
                "region": {"type": "string"},
                "ip": {"type": "string"},
                "exchange_rate": {"type": "number"}
            }
        },
        "domain.ServiceInquiry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "service_id": {"type": "string"},
                "service_title": {"type": "string"},
                "client_name": {"type": "string"},
                "client_email": {"type": "string"},
                "client_id": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "accepted", "in-progress", "completed", "rejected"]},
                "created_at": {"type": "string"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.Identity"},
                "redirect": {"type": "string"}
            }
        },
        "handler.createInquiryRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "client_name": {"type": "string"},
                "client_email": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.localizedService": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string"},
                "icon": {"type": "string"},
                "features": {"type": "array", "items": {"type": "string"}},
                "localized_price": {"type": "string"},
                "currency": {"type": "string"}
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
        "handler.navigateResponse": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "outcome": {"type": "string"},
                "redirect": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "devport API",
	Description:      "Portfolio, service inquiries and client dashboard backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
