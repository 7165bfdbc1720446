// Package docs registers the Swagger document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "Service is up"}}
            }
        },
        "/languages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["languages"],
                "summary": "List languages",
                "responses": {"200": {"description": "Languages retrieved successfully"}}
            }
        },
        "/courses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "List courses",
                "parameters": [
                    {"type": "string", "description": "Filter by language code or tag", "name": "language", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "size", "in": "query"},
                    {"type": "string", "description": "Viewer IANA timezone", "name": "tz", "in": "query"},
                    {"type": "string", "description": "Viewer IANA timezone", "name": "X-Timezone", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "Courses retrieved successfully"},
                    "400": {"description": "Invalid timezone or filter"}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Get course by ID",
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Batch to show instead of the automatic selection", "name": "batch", "in": "query"},
                    {"type": "string", "description": "Viewer IANA timezone", "name": "tz", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Course retrieved successfully"},
                    "404": {"description": "Course or batch not found"}
                }
            }
        },
        "/courses/{id}/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Get course availability",
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Viewer IANA timezone", "name": "tz", "in": "query"}
                ],
                "responses": {"200": {"description": "Availability retrieved successfully"}}
            }
        },
        "/courses/{id}/views": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Record a view",
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true},
                    {"description": "Batch being watched", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RecordViewRequest"}}
                ],
                "responses": {
                    "200": {"description": "View recorded"},
                    "403": {"description": "Batch is not accessible now"}
                }
            }
        },
        "/courses/{id}/calendar.ics": {
            "get": {
                "produces": ["text/calendar"],
                "tags": ["courses"],
                "summary": "Course calendar feed",
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "iCalendar document"}}
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "Admin credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/admin/courses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List all courses",
                "parameters": [
                    {"type": "string", "description": "Filter by language", "name": "language", "in": "query"},
                    {"type": "string", "description": "Timezone used for accessibility flags", "name": "tz", "in": "query"},
                    {"type": "string", "description": "Evaluate at this RFC 3339 instant instead of now", "name": "at", "in": "query"}
                ],
                "responses": {"200": {"description": "Courses retrieved successfully"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create a course",
                "parameters": [
                    {"description": "Course", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Course created successfully"},
                    "400": {"description": "Invalid course data"}
                }
            }
        },
        "/admin/courses/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Get a stored course",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Course retrieved successfully"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Update a course",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Course", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CourseRequest"}}
                ],
                "responses": {"200": {"description": "Course updated successfully"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a course",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "Course deleted"}}
            }
        },
        "/admin/courses/{id}/preview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Preview a course page",
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Batch to show instead of the automatic selection", "name": "batch", "in": "query"},
                    {"type": "string", "description": "Viewer IANA timezone", "name": "tz", "in": "query"},
                    {"type": "string", "description": "Evaluate at this RFC 3339 instant instead of now", "name": "at", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Preview retrieved successfully"},
                    "400": {"description": "Invalid timezone or instant"},
                    "404": {"description": "Course or batch not found"}
                }
            }
        },
        "/admin/courses/{id}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Change course status",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateStatusRequest"}}
                ],
                "responses": {"200": {"description": "Status changed"}}
            }
        },
        "/admin/courses/{id}/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Course view statistics",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Statistics retrieved successfully"}}
            }
        },
        "/admin/analytics/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Analytics summary",
                "responses": {"200": {"description": "Summary retrieved successfully"}}
            }
        },
        "/admin/live": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Live courses",
                "responses": {"200": {"description": "Snapshot retrieved successfully"}}
            }
        },
        "/admin/live/ws": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Stream live course transitions",
                "parameters": [
                    {"type": "string", "description": "JWT access token", "name": "token", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols to WebSocket"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "dto.RecordViewRequest": {
            "type": "object",
            "required": ["batchName"],
            "properties": {
                "batchName": {"type": "string", "example": "Morning Batch"}
            }
        },
        "dto.UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["active", "inactive"]}
            }
        },
        "dto.BatchRequest": {
            "type": "object",
            "required": ["days", "time"],
            "properties": {
                "batchName": {"type": "string", "example": "Morning Batch"},
                "days": {"type": "array", "items": {"type": "string"}, "example": ["Monday", "Wednesday", "Friday"]},
                "time": {"type": "string", "example": "07:00"}
            }
        },
        "dto.CourseRequest": {
            "type": "object",
            "required": ["duration", "languages", "timeSlots", "title", "videoId"],
            "properties": {
                "content": {"type": "string"},
                "description": {"type": "string"},
                "duration": {"type": "integer", "example": 60},
                "languages": {"type": "array", "items": {"type": "string"}, "example": ["english", "hindi"]},
                "status": {"type": "string", "enum": ["active", "inactive"]},
                "timeSlots": {"type": "array", "items": {"$ref": "#/definitions/dto.BatchRequest"}},
                "title": {"type": "string", "example": "Morning Energizing Flow"},
                "videoId": {"type": "string", "example": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "CourseWindow API",
	Description:      "Video courses that open only during their scheduled weekly batches, evaluated on each viewer's wall clock.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
