package docs

import "github.com/swaggo/swag"

const docTemplateArchive = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Archive"],
                "summary": "List archived reports",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "page size", "name": "page_size", "in": "query"},
                    {"enum": ["-generated_at", "generated_at", "total_distance", "-total_distance"], "type": "string", "default": "-generated_at", "description": "sort key", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ReportList"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/reports/{report_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Archive"],
                "summary": "Get an archived report",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "report id", "name": "report_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"error": {}}
        },
        "models.Trip": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-03-01"},
                "from_branch": {"type": "string", "example": "Main Library"},
                "to_branch": {"type": "string", "example": "Holland Branch"},
                "distance": {"type": "number", "example": 12.3}
            }
        },
        "models.Report": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "generated_at": {"type": "string", "format": "date-time"},
                "input_hash": {"type": "string"},
                "trips": {"type": "array", "items": {"$ref": "#/definitions/models.Trip"}},
                "total_distance": {"type": "number"},
                "entry_count": {"type": "integer"},
                "discarded_groups": {"type": "integer"},
                "zero_duration_dropped": {"type": "integer"}
            }
        },
        "models.ReportSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "generated_at": {"type": "string", "format": "date-time"},
                "trip_count": {"type": "integer"},
                "total_distance": {"type": "number"},
                "entry_count": {"type": "integer"}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "first_page": {"type": "integer"},
                "last_page": {"type": "integer"},
                "total_records": {"type": "integer"}
            }
        },
        "models.ReportList": {
            "type": "object",
            "properties": {
                "reports": {"type": "array", "items": {"$ref": "#/definitions/models.ReportSummary"}},
                "metadata": {"$ref": "#/definitions/models.Metadata"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfoArchive holds exported Swagger Info so clients can modify it
var SwaggerInfoArchive = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Archive Service API",
	Description:      "Stores generated mileage reports and serves their history.",
	InfoInstanceName: "archive",
	SwaggerTemplate:  docTemplateArchive,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfoArchive.InstanceName(), SwaggerInfoArchive)
}
