// Package docs serves the OpenAPI document mounted at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Price Saver API",
        "description": "Community price submissions, moderation, and price insights.",
        "version": "1.0"
    },
    "basePath": "/",
    "paths": {
        "/api/prices/draft": {
            "post": {
                "summary": "Submit a price draft for moderation",
                "tags": ["prices"]
            }
        },
        "/api/prices/drafts": {
            "get": {
                "summary": "List price drafts",
                "tags": ["prices"]
            }
        },
        "/api/admin/drafts/{draft_id}/approve": {
            "post": {
                "summary": "Approve a draft, creating an observation and crediting cashback",
                "tags": ["moderation"]
            }
        },
        "/api/admin/drafts/{draft_id}/reject": {
            "post": {
                "summary": "Reject a draft with moderator notes",
                "tags": ["moderation"]
            }
        },
        "/api/ml/search": {
            "get": {
                "summary": "Cheapest recent price and top five locations for an item",
                "tags": ["insights"]
            }
        },
        "/api/ml/heatmap": {
            "get": {
                "summary": "Generate the price heatmap for an item",
                "tags": ["insights"]
            }
        },
        "/api/ml/heatmap/{item}/snapshot": {
            "get": {
                "summary": "Latest persisted heatmap snapshot for an item",
                "tags": ["insights"]
            }
        },
        "/api/stores": {
            "get": {"summary": "List registered stores", "tags": ["catalog"]},
            "post": {"summary": "Register a store", "tags": ["catalog"]}
        },
        "/api/items": {
            "get": {"summary": "List catalog items", "tags": ["catalog"]},
            "post": {"summary": "Create a catalog item", "tags": ["catalog"]}
        },
        "/api/users/{user_id}/balance": {
            "get": {"summary": "Cashback wallet balance", "tags": ["rewards"]}
        },
        "/api/users/{user_id}/ledger": {
            "get": {"summary": "Cashback ledger entries, newest first", "tags": ["rewards"]}
        }
    }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (*s) ReadDoc() string {
	return docTemplate
}
