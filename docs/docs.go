package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{.Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/": {
            "get": {
                "tags": ["Roommates"],
                "summary": "Roommate list page",
                "description": "HTML page listing every stored roommate",
                "produces": ["text/html"],
                "responses": {
                    "200": {"description": "Rendered page"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/roommate": {
            "get": {
                "tags": ["Roommates"],
                "summary": "List roommates",
                "description": "Returns the full roommate collection in insertion order",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Roommate collection",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/Roommate"}
                        }
                    },
                    "500": {"description": "Internal server error"}
                }
            },
            "post": {
                "tags": ["Roommates"],
                "summary": "Create roommate",
                "description": "Generates a roommate from randomuser.me and appends it to the collection. The request body is ignored.",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Created roommate",
                        "schema": {"$ref": "#/definitions/Roommate"}
                    },
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {"description": "Server is healthy"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness Check",
                "description": "Check that the roommate store is readable",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Store not readable"}
                }
            }
        }
    },
    "definitions": {
        "Roommate": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "9b2f5c1e-7d4a-4f3b-9a51-0c2d8e6f1a23"},
                "name": {"type": "string", "example": "Lucia Moreno"},
                "age": {"type": "integer", "example": 34},
                "phone": {"type": "string", "example": "(912) 555-0101"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Roommates API",
	Description:      "Generate and list roommates backed by a JSON file",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
