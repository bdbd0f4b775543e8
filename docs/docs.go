package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "FixMyCity Backend",
    "description": "Citizen complaint intake, priority zone ranking and hotspot clustering",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {
      "get": {"tags": ["health"], "summary": "Health check", "produces": ["application/json"],
        "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}}
    },
    "/api/complaints": {
      "get": {"tags": ["complaints"], "summary": "List complaints", "produces": ["application/json"],
        "parameters": [
          {"name": "category", "in": "query", "type": "string"},
          {"name": "severity", "in": "query", "type": "string"},
          {"name": "status", "in": "query", "type": "string"},
          {"name": "date_from", "in": "query", "type": "string"},
          {"name": "date_to", "in": "query", "type": "string"}
        ],
        "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Complaint"}}}}},
      "post": {"tags": ["complaints"], "summary": "Submit a complaint", "consumes": ["application/json"], "produces": ["application/json"],
        "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateComplaintRequest"}}],
        "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Complaint"}}, "400": {"description": "Bad request"}}}
    },
    "/api/complaints/priority-zones": {
      "get": {"tags": ["hotspots"], "summary": "Priority zones", "produces": ["application/json"],
        "parameters": [{"name": "top", "in": "query", "type": "integer"}],
        "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ZoneResult"}}}, "400": {"description": "Bad request"}}}
    },
    "/api/complaints/clusters": {
      "get": {"tags": ["hotspots"], "summary": "Complaint clusters", "produces": ["application/json"],
        "parameters": [
          {"name": "eps_km", "in": "query", "type": "number"},
          {"name": "min_samples", "in": "query", "type": "integer"}
        ],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Bad request"}}}
    },
    "/api/complaints/{id}/resolve": {
      "post": {"tags": ["officer"], "summary": "Mark a complaint resolved", "produces": ["application/json"],
        "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
        "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not found"}}}
    },
    "/api/complaints/{id}/unresolve": {
      "post": {"tags": ["officer"], "summary": "Mark a complaint unresolved", "produces": ["application/json"],
        "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
        "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not found"}}}
    },
    "/api/officer/{officer_id}/actions": {
      "get": {"tags": ["officer"], "summary": "Officer action log", "produces": ["application/json"],
        "parameters": [{"name": "officer_id", "in": "path", "required": true, "type": "string"}],
        "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
    },
    "/api/analytics": {
      "get": {"tags": ["analytics"], "summary": "Dashboard analytics", "produces": ["application/json"],
        "responses": {"200": {"description": "OK"}}}
    },
    "/api/geocode": {
      "post": {"tags": ["geocode"], "summary": "Geocode an area name", "consumes": ["application/json"], "produces": ["application/json"],
        "responses": {"200": {"description": "OK"}, "400": {"description": "Bad request"}}}
    }
  },
  "definitions": {
    "Complaint": {
      "type": "object",
      "properties": {
        "id": {"type": "integer"},
        "category": {"type": "string"},
        "severity": {"type": "string"},
        "description": {"type": "string"},
        "latitude": {"type": "number"},
        "longitude": {"type": "number"},
        "area_name": {"type": "string"},
        "timestamp": {"type": "string"},
        "status": {"type": "string"},
        "area_importance": {"type": "string"}
      }
    },
    "CreateComplaintRequest": {
      "type": "object",
      "required": ["category", "severity", "description"],
      "properties": {
        "category": {"type": "string"},
        "severity": {"type": "string", "enum": ["low", "medium", "high", "critical"]},
        "description": {"type": "string"},
        "latitude": {"type": "number"},
        "longitude": {"type": "number"},
        "area_name": {"type": "string"},
        "area_importance": {"type": "string", "enum": ["low", "normal", "high", "critical"]}
      }
    },
    "ZoneResult": {
      "type": "object",
      "properties": {
        "latitude": {"type": "number"},
        "longitude": {"type": "number"},
        "complaint_count": {"type": "integer"},
        "priority_score": {"type": "number"},
        "severity": {"type": "string"},
        "area_importance": {"type": "string"},
        "days_unresolved": {"type": "integer"}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
