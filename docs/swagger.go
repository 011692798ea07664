// Package docs News Aggregator API
//
// News Aggregator is a backend service that pulls articles from upstream news
// providers per category, catalogues them under stable identities, and tracks
// per-article engagement (likes and comments) for registered users.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

import "github.com/swaggo/swag"

// @title News Aggregator API
// @version 1.0
// @description A news aggregation service with per-category feeds, article identity and user engagement
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func init() {
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: "swagger",
		SwaggerTemplate:  docTemplate,
	})
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "News Aggregator API",
        "description": "A news aggregation service with per-category feeds, article identity and user engagement",
        "version": "1.0.0",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        }
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/health": {
            "get": {
                "description": "Health check endpoint",
                "summary": "Health Check",
                "operationId": "healthCheck",
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "status": {
                                    "type": "string",
                                    "example": "healthy"
                                },
                                "service": {
                                    "type": "string",
                                    "example": "news-aggregator"
                                },
                                "poller_active": {
                                    "type": "boolean"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/categories": {
            "get": {
                "description": "Get all available news categories, the aggregate category first",
                "summary": "List Categories",
                "operationId": "getCategories",
                "responses": {
                    "200": {
                        "description": "List of available categories",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "categories": {
                                    "type": "array",
                                    "items": {
                                        "type": "string"
                                    },
                                    "example": ["news", "business", "technology"]
                                },
                                "count": {
                                    "type": "integer"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/articles": {
            "get": {
                "description": "Get one page of articles for a category, optionally filtered by a search query",
                "summary": "List Articles",
                "operationId": "listArticles",
                "parameters": [
                    {
                        "name": "category",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Category name (defaults to the aggregate category)"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Search query"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "type": "integer",
                        "description": "1-based page number"
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "required": false,
                        "type": "integer",
                        "description": "Page size"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "One page of articles",
                        "schema": {
                            "$ref": "#/definitions/ArticlePage"
                        }
                    },
                    "400": {
                        "description": "Invalid query parameters"
                    },
                    "404": {
                        "description": "Category not found"
                    }
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "description": "Get a single catalogued article with its like count",
                "summary": "Get Article",
                "operationId": "getArticle",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Article id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "The article",
                        "schema": {
                            "$ref": "#/definitions/ArticleView"
                        }
                    },
                    "404": {
                        "description": "Article not found"
                    }
                }
            }
        },
        "/articles/{id}/like": {
            "post": {
                "description": "Toggle the calling user's like on an article",
                "summary": "Toggle Article Like",
                "operationId": "toggleArticleLike",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Article id"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "New like state",
                        "schema": {
                            "$ref": "#/definitions/ToggleResult"
                        }
                    },
                    "401": {
                        "description": "Missing or unknown user"
                    },
                    "404": {
                        "description": "Article not found"
                    }
                }
            }
        },
        "/articles/{id}/comments": {
            "get": {
                "description": "List an article's comments, newest first",
                "summary": "List Comments",
                "operationId": "listComments",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Article id"
                    },
                    {
                        "name": "viewer",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Username used to mark which comments the viewer liked"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Comments, newest first",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "comments": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/CommentView"
                                    }
                                },
                                "count": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Article not found"
                    }
                }
            },
            "post": {
                "description": "Add a comment to an article",
                "summary": "Add Comment",
                "operationId": "addComment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Article id"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {
                                    "type": "string"
                                },
                                "text": {
                                    "type": "string",
                                    "maxLength": 300
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "The created comment",
                        "schema": {
                            "$ref": "#/definitions/CommentView"
                        }
                    },
                    "400": {
                        "description": "Blank or over-long comment text"
                    },
                    "401": {
                        "description": "Missing or unknown user"
                    },
                    "404": {
                        "description": "Article not found"
                    }
                }
            }
        },
        "/articles/{id}/comments/{commentID}/like": {
            "post": {
                "description": "Toggle the calling user's like on a comment",
                "summary": "Toggle Comment Like",
                "operationId": "toggleCommentLike",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Article id"
                    },
                    {
                        "name": "commentID",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Comment id"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "New like state",
                        "schema": {
                            "$ref": "#/definitions/ToggleResult"
                        }
                    },
                    "401": {
                        "description": "Missing or unknown user"
                    },
                    "404": {
                        "description": "Comment not found"
                    }
                }
            }
        },
        "/trending": {
            "get": {
                "description": "Get trending articles from the configured trending category",
                "summary": "Get Trending",
                "operationId": "getTrending",
                "parameters": [
                    {
                        "name": "category",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Category override"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "type": "integer",
                        "description": "Maximum number of articles"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Trending articles",
                        "schema": {
                            "$ref": "#/definitions/ArticlePage"
                        }
                    },
                    "404": {
                        "description": "Category not found"
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Register a new user account",
                "summary": "Register User",
                "operationId": "registerUser",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Credentials"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "User registered"
                    },
                    "400": {
                        "description": "Missing fields or duplicate username"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Verify a user's credentials",
                "summary": "Login",
                "operationId": "loginUser",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Credentials"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Unknown user or wrong password"
                    }
                }
            }
        },
        "/poller/status": {
            "get": {
                "description": "Get background poller status",
                "summary": "Poller Status",
                "operationId": "getPollerStatus",
                "responses": {
                    "200": {
                        "description": "Poller status"
                    }
                }
            }
        },
        "/poller/force-poll/{category}": {
            "post": {
                "description": "Force an immediate poll of a category",
                "summary": "Force Poll",
                "operationId": "forcePollCategory",
                "parameters": [
                    {
                        "name": "category",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Category name"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Poll initiated"
                    },
                    "404": {
                        "description": "Category not found"
                    }
                }
            }
        },
        "/poller/last-polled": {
            "get": {
                "description": "Get the last poll time per category",
                "summary": "Last Polled Times",
                "operationId": "getLastPolledTimes",
                "responses": {
                    "200": {
                        "description": "Map of category to last poll time"
                    }
                }
            }
        }
    },
    "definitions": {
        "ArticleView": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "description": "Stable article id"
                },
                "title": {
                    "type": "string",
                    "description": "Article title"
                },
                "summary": {
                    "type": "string",
                    "description": "Article summary"
                },
                "image": {
                    "type": "string",
                    "description": "Image URL"
                },
                "url": {
                    "type": "string",
                    "description": "Canonical article URL"
                },
                "source": {
                    "type": "string",
                    "description": "Upstream source name"
                },
                "published_at": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Publication date"
                },
                "categories": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "description": "Category memberships"
                },
                "primary_category": {
                    "type": "string",
                    "description": "Most recent concrete category"
                },
                "likes": {
                    "type": "integer",
                    "description": "Current like count"
                }
            }
        },
        "ArticlePage": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string",
                    "description": "Requested category"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ArticleView"
                    },
                    "description": "Articles on this page"
                },
                "total_results": {
                    "type": "integer",
                    "description": "Total matching articles across all pages"
                },
                "page": {
                    "type": "integer",
                    "description": "1-based page number"
                },
                "page_size": {
                    "type": "integer",
                    "description": "Page size"
                },
                "degraded": {
                    "type": "boolean",
                    "description": "True when every upstream fetch failed and placeholders are served"
                },
                "updated": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Assembly time"
                }
            }
        },
        "CommentView": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "description": "Comment id"
                },
                "article_id": {
                    "type": "string",
                    "description": "Owning article id"
                },
                "author": {
                    "type": "string",
                    "description": "Comment author"
                },
                "text": {
                    "type": "string",
                    "description": "Comment text"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time",
                    "description": "Creation time"
                },
                "likes": {
                    "type": "integer",
                    "description": "Current like count"
                },
                "liked": {
                    "type": "boolean",
                    "description": "Whether the viewer liked this comment"
                }
            }
        },
        "ToggleResult": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer",
                    "description": "Like count after the toggle"
                },
                "liked": {
                    "type": "boolean",
                    "description": "Whether the caller now likes the target"
                }
            }
        },
        "Credentials": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        }
    },
    "tags": [
        {
            "name": "Health",
            "description": "Health check endpoints"
        },
        {
            "name": "Categories",
            "description": "Category listing endpoints"
        },
        {
            "name": "Articles",
            "description": "Article listing and engagement endpoints"
        },
        {
            "name": "Auth",
            "description": "User account endpoints"
        },
        {
            "name": "Poller",
            "description": "Background poller endpoints"
        }
    ]
}`
