// Package docs registers the Swagger specification for the BudgetBuddy API.
// Maintained by hand alongside the handler annotations in the api package.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
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
        "/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Get Profile",
                "responses": {
                    "200": {"description": "Profile and recommended monthly savings."}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Update Profile",
                "responses": {
                    "200": {"description": "The stored profile and persistence status."},
                    "400": {"description": "Invalid body or negative amounts."}
                }
            }
        },
        "/months": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Months"],
                "summary": "List Months",
                "parameters": [
                    {
                        "type": "array",
                        "items": {"type": "string"},
                        "collectionFormat": "multi",
                        "description": "Filter conditions and logical operators, alternating.",
                        "name": "filter",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "Matching months and total count."},
                    "400": {"description": "Malformed filter."}
                }
            }
        },
        "/months/{key}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Months"],
                "summary": "Get Month",
                "parameters": [
                    {"type": "string", "description": "Month key, e.g. march_2024.", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "The month record."},
                    "404": {"description": "Key is not one of the tracked months."}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Months"],
                "summary": "Update Month",
                "parameters": [
                    {"type": "string", "description": "Month key, e.g. march_2024.", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "The derived record and persistence status."},
                    "400": {"description": "Invalid body or negative amounts."},
                    "404": {"description": "Key is not one of the tracked months."}
                }
            }
        },
        "/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Summary"],
                "summary": "Get Summary",
                "responses": {
                    "200": {"description": "The computed dashboard summary."}
                }
            }
        },
        "/analysis": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Get Analysis State",
                "responses": {
                    "200": {"description": "Session state and last result."}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Generate Analysis",
                "responses": {
                    "200": {"description": "The completed analysis."},
                    "400": {"description": "Invalid request body."},
                    "409": {"description": "An analysis request is already in progress."}
                }
            }
        },
        "/analysis/apply": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Apply Recommended Target",
                "responses": {
                    "200": {"description": "The updated profile and persistence status."},
                    "400": {"description": "Invalid body or target out of range."},
                    "409": {"description": "No recommendation is on offer."}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "BudgetBuddy API",
	Description:      "Personal-finance dashboard API: profile and savings target management, monthly income/expense tracking, derived savings metrics and AI-powered financial analysis.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
