// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/locations/{id}/verify": {
            "post": {
                "produces": ["application/json"],
                "tags": ["verification"],
                "summary": "Verify a stored location",
                "parameters": [
                    {"type": "integer", "description": "Location id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VerificationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/verify": {
            "get": {
                "produces": ["application/json"],
                "tags": ["verification"],
                "summary": "Verify a free-form address without storing it",
                "parameters": [
                    {"type": "string", "description": "Street line 1", "name": "street1", "in": "query"},
                    {"type": "string", "description": "Street line 2", "name": "street2", "in": "query"},
                    {"type": "string", "description": "City", "name": "city", "in": "query"},
                    {"type": "string", "description": "State or region", "name": "state", "in": "query"},
                    {"type": "string", "description": "Postal code", "name": "postal_code", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VerificationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handler.VerificationResponse": {
            "type": "object",
            "properties": {
                "outcome": {"type": "string", "enum": ["none", "standardized", "connection_error"]},
                "message": {"type": "string"},
                "input_address": {"type": "string"},
                "geocoded": {"type": "boolean"},
                "prefix": {"type": "string"},
                "alternatives": {"type": "array", "items": {"$ref": "#/definitions/models.AlternativeReference"}},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "models.AlternativeReference": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "a": {"type": "string"}
            }
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "street1": {"type": "string"},
                "street2": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "postal_code": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "standardize_attempted_service_type": {"type": "string"},
                "standardize_attempted_at": {"type": "string"},
                "standardize_attempted_result": {"type": "string"},
                "standardized_at": {"type": "string"},
                "geocode_attempted_service_type": {"type": "string"},
                "geocode_attempted_at": {"type": "string"},
                "geocoded_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Address Verification API",
	Description:      "Standardizes and geocodes addresses with the Addy validation service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
