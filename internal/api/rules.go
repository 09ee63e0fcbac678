package api

import "github.com/tiendalab/tienda-bff/internal/api/validation"

// Request rules per route. Fields without Sometimes are required.
var (
	productCreateRules = validation.Rules{
		{Field: "id", Tags: "integer", Sometimes: true},
		{Field: "title", Tags: "string"},
		{Field: "price", Tags: "number"},
		{Field: "description", Tags: "string", Sometimes: true},
		{Field: "category", Tags: "string"},
		{Field: "image", Tags: "string", Sometimes: true},
	}

	productUpdateRules = validation.Rules{
		{Field: "title", Tags: "string", Sometimes: true},
		{Field: "price", Tags: "number", Sometimes: true},
		{Field: "description", Tags: "string", Sometimes: true},
		{Field: "category", Tags: "string", Sometimes: true},
		{Field: "image", Tags: "string", Sometimes: true},
	}

	cartCreateRules = validation.Rules{
		{Field: "id", Tags: "integer"},
		{Field: "userId", Tags: "integer"},
		{Field: "products", Tags: "array"},
		{Field: "products.*.productId", Tags: "integer"},
		{Field: "products.*.quantity", Tags: "integer"},
	}

	cartUpdateRules = validation.Rules{
		{Field: "userId", Tags: "integer", Sometimes: true},
		{Field: "products", Tags: "array", Sometimes: true},
		{Field: "products.*.productId", Tags: "integer"},
		{Field: "products.*.quantity", Tags: "integer"},
	}

	cartAddProductsRules = validation.Rules{
		{Field: "products", Tags: "array"},
		{Field: "products.*.productId", Tags: "integer"},
		{Field: "products.*.quantity", Tags: "integer"},
	}

	userCreateRules = validation.Rules{
		{Field: "id", Tags: "integer"},
		{Field: "username", Tags: "string"},
		{Field: "email", Tags: "string,email"},
		{Field: "password", Tags: "string,min=6"},
	}

	userUpdateRules = validation.Rules{
		{Field: "username", Tags: "string", Sometimes: true},
		{Field: "email", Tags: "string,email", Sometimes: true},
		{Field: "password", Tags: "string,min=6", Sometimes: true},
	}

	loginRules = validation.Rules{
		{Field: "username", Tags: "string"},
		{Field: "password", Tags: "string"},
	}
)
