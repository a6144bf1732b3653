// Package docs holds the swagger documents of both service modes.
package docs

import "github.com/swaggo/swag"

const docTemplateReport = `{
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
            "post": {
                "description": "Turns a timesheet export into trips between branches. The export is sent as the user_input form field or as a text/plain body.",
                "consumes": ["text/plain", "application/x-www-form-urlencoded", "multipart/form-data"],
                "produces": [
                    "application/json",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
                    "text/csv",
                    "application/pdf"
                ],
                "tags": ["Reports"],
                "summary": "Generate a mileage report",
                "parameters": [
                    {"enum": ["json", "xlsx", "csv", "pdf"], "type": "string", "default": "xlsx", "description": "response format", "name": "format", "in": "query"},
                    {"type": "string", "description": "timesheet export text", "name": "user_input", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/Error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/entries": {
            "post": {
                "description": "Returns the check-in/out entries found in a timesheet export without deriving trips.",
                "consumes": ["text/plain", "application/x-www-form-urlencoded", "multipart/form-data"],
                "produces": [
                    "application/json",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
                    "text/csv"
                ],
                "tags": ["Reports"],
                "summary": "Extract raw timesheet entries",
                "parameters": [
                    {"enum": ["json", "xlsx", "csv"], "type": "string", "default": "json", "description": "response format", "name": "format", "in": "query"},
                    {"type": "string", "description": "timesheet export text", "name": "user_input", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Entry"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/ws/reports": {
            "get": {
                "description": "WebSocket. The server pushes {\"type\":\"report_generated\",\"report\":{...}} for every new report.",
                "tags": ["Reports"],
                "summary": "Live feed of generated reports",
                "responses": {"101": {"description": "Switching Protocols"}}
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
        "models.Entry": {
            "type": "object",
            "properties": {
                "branch": {"type": "string", "example": "Main Library"},
                "time_in": {"type": "string", "example": "9:00 AM"},
                "date_in": {"type": "string", "example": "03/01/2024"},
                "time_out": {"type": "string", "example": "5:00 PM"},
                "date_out": {"type": "string", "example": "03/01/2024"},
                "duration": {"type": "string", "example": "8:00"},
                "length": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfoReport holds exported Swagger Info so clients can modify it
var SwaggerInfoReport = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Report Service API",
	Description:      "Turns timesheet exports into mileage reports between library branches.",
	InfoInstanceName: "report",
	SwaggerTemplate:  docTemplateReport,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfoReport.InstanceName(), SwaggerInfoReport)
}
