// Package snapclient holds the Swagger document for the client's local API.
// Regenerate with: swag init -g internal/client/http/router.go -o api/snapclient
package snapclient

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "AussieBroadWAN Team",
			"url": "https://github.com/aussiebroadwan/snaptranslate"
		},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/v1/view": {
			"get": {
				"tags": [
					"View"
				],
				"summary": "Current view",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/navigate": {
			"post": {
				"tags": [
					"View"
				],
				"summary": "Navigate",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					},
					"400": {
						"description": "Unknown page",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Target page",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.NavigateRequest"
						}
					}
				]
			}
		},
		"/v1/intro/enter": {
			"post": {
				"tags": [
					"View"
				],
				"summary": "Enter the app",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/intro/return": {
			"post": {
				"tags": [
					"View"
				],
				"summary": "Return to landing",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/login-prompt/confirm": {
			"post": {
				"tags": [
					"View"
				],
				"summary": "Confirm login prompt",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/login-prompt/cancel": {
			"post": {
				"tags": [
					"View"
				],
				"summary": "Cancel login prompt",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/notices/{id}": {
			"delete": {
				"tags": [
					"View"
				],
				"summary": "Dismiss notice",
				"responses": {
					"204": {
						"description": "No Content"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Notice ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/v1/auth/login": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Sign in",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					},
					"400": {
						"description": "Missing fields",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					},
					"401": {
						"description": "Incorrect username or password",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					},
					"409": {
						"description": "A sign-in is already in progress",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					},
					"423": {
						"description": "Locked out",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					},
					"429": {
						"description": "Throttled",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Credentials",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.LoginRequest"
						}
					}
				]
			}
		},
		"/v1/auth/logout": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Sign out",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					},
					"500": {
						"description": "Tokens could not be removed from storage",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/auth/register": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Register",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					},
					"400": {
						"description": "Validation failed or already taken",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "New account",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.RegisterRequest"
						}
					}
				]
			}
		},
		"/v1/auth/check-availability": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Check availability",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.AvailabilityResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Field and value",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.AvailabilityRequest"
						}
					}
				]
			}
		},
		"/v1/auth/verify-email": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Verify email",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					},
					"400": {
						"description": "Invalid or expired code",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Emailed code",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.VerifyEmailRequest"
						}
					}
				]
			}
		},
		"/v1/auth/verify-email/resend": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Resend verification code",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					},
					"429": {
						"description": "Cooldown still running",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/auth/reset-password/request": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Request password reset",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					},
					"429": {
						"description": "Cooldown still running",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Account email",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.ResetRequest"
						}
					}
				]
			}
		},
		"/v1/auth/reset-password": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Reset password",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.ViewResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Code and new password",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.ResetPasswordRequest"
						}
					}
				]
			}
		},
		"/v1/languages": {
			"get": {
				"tags": [
					"Features"
				],
				"summary": "List languages",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.LanguagesResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/translate": {
			"post": {
				"tags": [
					"Features"
				],
				"summary": "Translate an image",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/snapsdk.AnalyzeResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					},
					"401": {
						"description": "login_required",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"type": "file",
						"description": "Image to analyze",
						"name": "image",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "object or scene",
						"name": "mode",
						"in": "formData"
					},
					{
						"type": "array",
						"items": {
							"type": "string"
						},
						"collectionFormat": "csv",
						"description": "Target language codes",
						"name": "langs",
						"in": "formData"
					}
				]
			}
		},
		"/v1/images": {
			"post": {
				"tags": [
					"Features"
				],
				"summary": "Create an image",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.ImageResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					},
					"401": {
						"description": "login_required",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Prompt",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.ImageRequest"
						}
					}
				]
			}
		},
		"/v1/feedback": {
			"post": {
				"tags": [
					"Features"
				],
				"summary": "Translation feedback",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.MessageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Feedback",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/snapsdk.Feedback"
						}
					}
				]
			}
		},
		"/v1/features/reset": {
			"post": {
				"tags": [
					"Features"
				],
				"summary": "Reset feature state",
				"responses": {
					"204": {
						"description": "No Content"
					}
				}
			}
		},
		"/v1/admin/users": {
			"get": {
				"tags": [
					"Admin"
				],
				"summary": "List users",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/snapsdk.UserList"
						}
					},
					"204": {
						"description": "Not an admin"
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/v1/admin/users/update": {
			"post": {
				"tags": [
					"Admin"
				],
				"summary": "Ban or unban a user",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.MessageResponse"
						}
					},
					"204": {
						"description": "Not an admin"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Target account",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.UpdateUserRequest"
						}
					}
				]
			}
		},
		"/v1/admin/webhook": {
			"get": {
				"tags": [
					"Admin"
				],
				"summary": "Get webhook",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/snapsdk.Webhook"
						}
					},
					"204": {
						"description": "Not an admin"
					}
				},
				"produces": [
					"application/json"
				]
			},
			"put": {
				"tags": [
					"Admin"
				],
				"summary": "Set webhook",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.MessageResponse"
						}
					},
					"204": {
						"description": "Not an admin"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "https URL, or empty to clear",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/snapsdk.Webhook"
						}
					}
				]
			}
		},
		"/v1/admin/stats": {
			"get": {
				"tags": [
					"Admin"
				],
				"summary": "Dashboard statistics",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.Stats"
						}
					},
					"204": {
						"description": "Not an admin"
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/httpx.ErrorBody"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/livez": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Liveness probe",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		},
		"/readyz": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Readiness probe",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					},
					"503": {
						"description": "token database unavailable",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					}
				},
				"produces": [
					"application/json"
				]
			}
		}
	},
	"definitions": {
		"httpx.ErrorBody": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"error_description": {
					"type": "string"
				}
			}
		},
		"http.NavigateRequest": {
			"type": "object",
			"properties": {
				"page": {
					"type": "string",
					"example": "translate"
				}
			}
		},
		"http.LoginRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string",
					"example": "alice"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"http.RegisterRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string",
					"example": "alice@example.com"
				},
				"username": {
					"type": "string",
					"example": "alice"
				},
				"password": {
					"type": "string"
				},
				"confirm_password": {
					"type": "string"
				}
			}
		},
		"http.AvailabilityRequest": {
			"type": "object",
			"properties": {
				"field": {
					"type": "string",
					"enum": [
						"email",
						"username"
					]
				},
				"value": {
					"type": "string"
				}
			}
		},
		"http.AvailabilityResponse": {
			"type": "object",
			"properties": {
				"available": {
					"type": "boolean"
				}
			}
		},
		"http.VerifyEmailRequest": {
			"type": "object",
			"properties": {
				"otp": {
					"type": "string",
					"example": "123456"
				}
			}
		},
		"http.ResetRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				}
			}
		},
		"http.ResetPasswordRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"otp": {
					"type": "string"
				},
				"new_password": {
					"type": "string"
				},
				"confirm_password": {
					"type": "string"
				}
			}
		},
		"http.ImageRequest": {
			"type": "object",
			"properties": {
				"prompt": {
					"type": "string",
					"example": "a red fox in the snow"
				}
			}
		},
		"http.LanguagesResponse": {
			"type": "object",
			"properties": {
				"languages": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/service.Language"
					}
				}
			}
		},
		"http.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"http.UpdateUserRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"is_banned": {
					"type": "boolean"
				}
			}
		},
		"http.HealthChecks": {
			"type": "object",
			"properties": {
				"database": {
					"type": "string"
				},
				"session": {
					"type": "string"
				}
			}
		},
		"http.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				},
				"version": {
					"type": "string"
				},
				"checks": {
					"$ref": "#/definitions/http.HealthChecks"
				}
			}
		},
		"http.ViewResponse": {
			"type": "object",
			"properties": {
				"page": {
					"type": "string",
					"example": "translate"
				},
				"surface": {
					"type": "string"
				},
				"route": {
					"$ref": "#/definitions/router.Route"
				},
				"show_intro": {
					"type": "boolean"
				},
				"login_prompt": {
					"type": "boolean"
				},
				"verify_email": {
					"type": "string"
				},
				"signed_in": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/domain.UserProfile"
				},
				"nav": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"features": {
					"$ref": "#/definitions/service.FeatureState"
				},
				"notices": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/notify.Notice"
					}
				},
				"cooldowns": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				},
				"login_blocked_until": {
					"type": "string"
				}
			}
		},
		"router.Route": {
			"type": "object",
			"properties": {
				"page": {
					"type": "string"
				},
				"requires_token": {
					"type": "boolean"
				},
				"requires_role": {
					"type": "string"
				},
				"prompts_login": {
					"type": "boolean"
				}
			}
		},
		"domain.UserProfile": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"roles": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"is_banned": {
					"type": "boolean"
				}
			}
		},
		"notify.Notice": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"level": {
					"type": "string",
					"enum": [
						"info",
						"success",
						"error"
					]
				},
				"message": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"service.Language": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"popular": {
					"type": "boolean"
				}
			}
		},
		"service.FeatureState": {
			"type": "object",
			"properties": {
				"mode": {
					"type": "string"
				},
				"langs": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"translation": {
					"$ref": "#/definitions/snapsdk.AnalyzeResult"
				},
				"image": {
					"$ref": "#/definitions/service.ImageResult"
				}
			}
		},
		"service.ImageResult": {
			"type": "object",
			"properties": {
				"image_url": {
					"type": "string"
				},
				"resolution": {
					"type": "string"
				},
				"elapsed_ns": {
					"type": "integer"
				},
				"prompt": {
					"type": "string"
				}
			}
		},
		"service.Stats": {
			"type": "object",
			"properties": {
				"usage_summary": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/snapsdk.UsageSummary"
					}
				},
				"top_languages": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/snapsdk.StatBucket"
					}
				},
				"image_categories": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/snapsdk.StatBucket"
					}
				},
				"feedback_stats": {
					"$ref": "#/definitions/snapsdk.FeedbackStats"
				}
			}
		},
		"snapsdk.Translation": {
			"type": "object",
			"properties": {
				"language": {
					"type": "string"
				},
				"translated": {
					"type": "string"
				},
				"audio_url": {
					"type": "string"
				}
			}
		},
		"snapsdk.AnalyzeResult": {
			"type": "object",
			"properties": {
				"original": {
					"type": "string"
				},
				"th": {
					"type": "string"
				},
				"audio_url": {
					"type": "string"
				},
				"translations": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/snapsdk.Translation"
					}
				}
			}
		},
		"snapsdk.Feedback": {
			"type": "object",
			"properties": {
				"feedback": {
					"type": "string",
					"enum": [
						"up",
						"down"
					]
				},
				"translation_id": {
					"type": "string"
				},
				"original_text": {
					"type": "string"
				}
			}
		},
		"snapsdk.AdminUser": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"roles": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"is_banned": {
					"type": "boolean"
				}
			}
		},
		"snapsdk.UserList": {
			"type": "object",
			"properties": {
				"users": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/snapsdk.AdminUser"
					}
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"snapsdk.Webhook": {
			"type": "object",
			"properties": {
				"discord_webhook_url": {
					"type": "string"
				}
			}
		},
		"snapsdk.UsageSummary": {
			"type": "object",
			"properties": {
				"user_email": {
					"type": "string"
				},
				"total_count": {
					"type": "integer"
				},
				"last_used": {
					"type": "string"
				}
			}
		},
		"snapsdk.StatBucket": {
			"type": "object",
			"properties": {
				"_id": {
					"type": "string"
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"snapsdk.FeedbackStats": {
			"type": "object",
			"properties": {
				"up": {
					"type": "integer"
				},
				"down": {
					"type": "integer"
				},
				"total": {
					"type": "integer"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:7070",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "SnapTranslate Client API",
	Description:      "Local API of the SnapTranslate client. It owns the session, the page\nrouter and the feature state, and talks to the translation backend on\nbehalf of the UI shell.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
