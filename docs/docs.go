// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/app/main.go -o docs
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
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/activities": {
            "post": {
                "tags": ["activities"],
                "summary": "Submit activity",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Processed result, success=false carries a fallback reward"},
                    "400": {"description": "Malformed body"},
                    "404": {"description": "Unknown user"}
                }
            }
        },
        "/activities/batch": {
            "post": {
                "tags": ["activities"],
                "summary": "Submit activity batch",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Results in input order with a summary"},
                    "400": {"description": "Empty or oversized batch"}
                }
            }
        },
        "/activities/stream": {
            "post": {
                "tags": ["activities"],
                "summary": "Stream activities",
                "consumes": ["application/x-ndjson"],
                "produces": ["application/x-ndjson"],
                "responses": {"200": {"description": "One result line per submission in arrival order, then a streamSummary line"}}
            }
        },
        "/rewards/issue": {
            "post": {
                "tags": ["rewards"],
                "summary": "Issue reward",
                "description": "Retries issuance of the reward stored for a processed submission. Recipient and amount come from the stored reward decision.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"type": "object", "required": ["processId"], "properties": {"processId": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "Issuance receipt"},
                    "400": {"description": "Missing process ID"},
                    "402": {"description": "Reward pool has insufficient funds"},
                    "404": {"description": "No reward stored for the process"},
                    "409": {"description": "Reward already issued"},
                    "502": {"description": "Reward network error"},
                    "503": {"description": "Issuance disabled"}
                }
            }
        },
        "/score/carbon": {
            "post": {
                "tags": ["score"],
                "summary": "Estimate carbon offset",
                "responses": {"200": {"description": "Carbon estimate"}, "400": {"description": "Invalid activity"}}
            }
        },
        "/score/sustainability": {
            "post": {
                "tags": ["score"],
                "summary": "Score sustainability",
                "responses": {"200": {"description": "Sustainability score"}, "400": {"description": "Invalid activity"}}
            }
        },
        "/orchestrator/stats": {
            "get": {
                "tags": ["activities"],
                "summary": "Processing statistics",
                "responses": {"200": {"description": "Running statistics"}}
            }
        },
        "/users/{userID}/events": {
            "get": {
                "tags": ["events"],
                "summary": "User event log",
                "parameters": [
                    {"type": "string", "name": "userID", "in": "path", "required": true},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "Events, newest first"}}
            }
        },
        "/events/stream": {
            "get": {
                "tags": ["events"],
                "summary": "Live engine events (server-sent events)",
                "parameters": [
                    {"type": "string", "name": "types", "in": "query"},
                    {"type": "string", "name": "user", "in": "query"}
                ],
                "produces": ["text/event-stream"],
                "responses": {"200": {"description": "Event stream"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "EcoHunt Activity Scoring API",
	Description:      "Scores environmental activities, calculates token rewards and issues them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
