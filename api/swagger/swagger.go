package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Advance Timetable Generator API",
        "description": "Constraint-based timetable generation for engineering colleges",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Login, registration and identity"},
        {"name": "Timetable", "description": "Generation, optimization and engine status"},
        {"name": "Validation", "description": "Constraint sweeps, edit checks and rule toggles"},
        {"name": "History", "description": "Versioned timetable snapshots"},
        {"name": "Export", "description": "PDF and CSV downloads"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current identity",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No usable timetable produced"}
                }
            }
        },
        "/timetable/optimize": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Optimize a timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OptimizeTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/engine/status": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Engine capabilities",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/validate": {
            "post": {
                "tags": ["Validation"],
                "summary": "Validate a timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/validate-edit": {
            "post": {
                "tags": ["Validation"],
                "summary": "Validate a slot edit",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateEditRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/constraints": {
            "get": {
                "tags": ["Validation"],
                "summary": "List constraint rules",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/constraints/{name}": {
            "patch": {
                "tags": ["Validation"],
                "summary": "Toggle a constraint rule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConstraintToggleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown constraint"}
                }
            }
        },
        "/timetable/versions": {
            "get": {
                "tags": ["History"],
                "summary": "List timetable versions",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "branch_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "History disabled"}
                }
            }
        },
        "/timetable/versions/{id}": {
            "get": {
                "tags": ["History"],
                "summary": "Get a timetable version",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"},
                    "503": {"description": "History disabled"}
                }
            }
        },
        "/timetable/versions/{id}/restore": {
            "post": {
                "tags": ["History"],
                "summary": "Restore a timetable version",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"},
                    "503": {"description": "History disabled"}
                }
            }
        },
        "/timetable/export": {
            "post": {
                "tags": ["Export"],
                "summary": "Export a timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Binary document"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "COORDINATOR", "VIEWER"]}
            },
            "required": ["email", "password", "full_name"]
        },
        "SlotAssignment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "day": {"type": "string"},
                "slot": {"type": "integer"},
                "year": {"type": "string"},
                "division": {"type": "string"},
                "batch": {"type": "string"},
                "subject": {"type": "string"},
                "teacher": {"type": "string"},
                "room": {"type": "string"},
                "kind": {"type": "string", "enum": ["THEORY", "LAB", "FREE"]},
                "locked": {"type": "boolean"}
            }
        },
        "BranchConfig": {
            "type": "object",
            "properties": {
                "branch_id": {"type": "string"},
                "academic_years": {"type": "array", "items": {"type": "string"}},
                "divisions": {"type": "object"},
                "working_days": {"type": "array", "items": {"type": "string"}},
                "slots_per_day": {"type": "integer"},
                "recess_slot": {"type": "integer"},
                "classrooms": {"type": "object"},
                "shared_labs": {"type": "array", "items": {"type": "object"}},
                "lab_batches_per_year": {"type": "object"}
            },
            "required": ["academic_years", "divisions", "working_days", "slots_per_day", "classrooms"]
        },
        "Curriculum": {
            "type": "object",
            "properties": {
                "subjects": {"type": "array", "items": {"type": "object"}},
                "teachers": {"type": "array", "items": {"type": "object"}},
                "assignments": {"type": "array", "items": {"type": "object"}},
                "preferences": {"type": "array", "items": {"type": "object"}}
            },
            "required": ["subjects"]
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "branch": {"$ref": "#/definitions/BranchConfig"},
                "curriculum": {"$ref": "#/definitions/Curriculum"},
                "strategy": {"type": "string", "enum": ["constructive", "backtracking"]},
                "optimize": {"type": "boolean"},
                "existing_timetable": {"type": "array", "items": {"$ref": "#/definitions/SlotAssignment"}},
                "locked_slot_ids": {"type": "array", "items": {"type": "string"}},
                "target_cohorts": {"type": "array", "items": {"type": "object"}},
                "description": {"type": "string"}
            },
            "required": ["branch", "curriculum"]
        },
        "OptimizeTimetableRequest": {
            "type": "object",
            "properties": {
                "timetable": {"type": "array", "items": {"$ref": "#/definitions/SlotAssignment"}},
                "branch": {"$ref": "#/definitions/BranchConfig"},
                "curriculum": {"$ref": "#/definitions/Curriculum"},
                "iterations": {"type": "integer"}
            },
            "required": ["timetable", "branch", "curriculum"]
        },
        "ValidateTimetableRequest": {
            "type": "object",
            "properties": {
                "timetable": {"type": "array", "items": {"$ref": "#/definitions/SlotAssignment"}},
                "branch": {"$ref": "#/definitions/BranchConfig"},
                "curriculum": {"$ref": "#/definitions/Curriculum"}
            },
            "required": ["timetable", "branch", "curriculum"]
        },
        "ValidateEditRequest": {
            "type": "object",
            "properties": {
                "new_slot": {"$ref": "#/definitions/SlotAssignment"},
                "timetable": {"type": "array", "items": {"$ref": "#/definitions/SlotAssignment"}},
                "branch": {"$ref": "#/definitions/BranchConfig"},
                "curriculum": {"$ref": "#/definitions/Curriculum"}
            },
            "required": ["new_slot", "branch", "curriculum"]
        },
        "ConstraintToggleRequest": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"}
            },
            "required": ["enabled"]
        },
        "ExportTimetableRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "format": {"type": "string", "enum": ["pdf", "csv"]},
                "timetable": {"type": "array", "items": {"$ref": "#/definitions/SlotAssignment"}}
            },
            "required": ["timetable"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
