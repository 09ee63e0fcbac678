package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendalab/tienda-bff/internal/api/validation"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

var userCreate = validation.Rules{
	{Field: "id", Tags: "integer"},
	{Field: "username", Tags: "string"},
	{Field: "email", Tags: "string,email"},
	{Field: "password", Tags: "string,min=6"},
}

var cartUpdate = validation.Rules{
	{Field: "userId", Tags: "integer", Sometimes: true},
	{Field: "products", Tags: "array", Sometimes: true},
	{Field: "products.*.productId", Tags: "integer"},
	{Field: "products.*.quantity", Tags: "integer"},
}

func TestValidateValidBodies(t *testing.T) {
	v := validation.New()

	errs := v.Validate(decode(t, `{"id":999,"username":"testuser1","email":"test1@example.com","password":"password123"}`), userCreate)
	assert.Nil(t, errs)

	errs = v.Validate(decode(t, `{}`), cartUpdate)
	assert.Nil(t, errs, "sometimes fields may be absent")

	errs = v.Validate(decode(t, `{"userId":0,"products":[{"productId":1,"quantity":0}]}`), cartUpdate)
	assert.Nil(t, errs, "zero is a present value")
}

func TestValidateUserErrors(t *testing.T) {
	v := validation.New()

	errs := v.Validate(decode(t, `{"id":"abc","username":42,"email":"not-an-email","password":"123"}`), userCreate)

	want := validation.Errors{
		"id":       {"El campo id debe ser un número entero."},
		"username": {"El campo username debe ser una cadena de texto."},
		"email":    {"El campo email debe ser una dirección de correo válida."},
		"password": {"El campo password debe tener al menos 6 caracteres."},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRequired(t *testing.T) {
	v := validation.New()

	errs := v.Validate(decode(t, `{"username":"   ","email":null}`), userCreate)

	assert.Equal(t, []string{"email", "id", "password", "username"}, errs.Fields())
	assert.Equal(t, []string{"El campo id es obligatorio."}, errs["id"])
}

func TestValidateWildcards(t *testing.T) {
	v := validation.New()

	errs := v.Validate(decode(t, `{"products":[{"productId":1,"quantity":2},{"productId":"x"},7]}`), cartUpdate)

	want := validation.Errors{
		"products.1.productId": {"El campo products.1.productId debe ser un número entero."},
		"products.1.quantity":  {"El campo products.1.quantity es obligatorio."},
		"products.2.productId": {"El campo products.2.productId es obligatorio."},
		"products.2.quantity":  {"El campo products.2.quantity es obligatorio."},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateArrayType(t *testing.T) {
	v := validation.New()
	rules := validation.Rules{
		{Field: "products", Tags: "array"},
		{Field: "products.*.productId", Tags: "integer"},
	}

	errs := v.Validate(decode(t, `{"products":"1,2"}`), rules)
	assert.Equal(t, validation.Errors{"products": {"El campo products debe ser un arreglo."}}, errs)

	errs = v.Validate(decode(t, `{"products":[]}`), rules)
	assert.Equal(t, validation.Errors{"products": {"El campo products es obligatorio."}}, errs)
}

func TestIntegerAndNumberTags(t *testing.T) {
	v := validation.New()
	rules := validation.Rules{
		{Field: "qty", Tags: "integer"},
		{Field: "price", Tags: "number"},
	}

	assert.Nil(t, v.Validate(decode(t, `{"qty":"5","price":"13.5"}`), rules), "numeric strings are accepted")
	assert.Nil(t, v.Validate(decode(t, `{"qty":2.0,"price":0}`), rules))

	errs := v.Validate(decode(t, `{"qty":2.5,"price":true}`), rules)
	assert.Equal(t, []string{"price", "qty"}, errs.Fields())
}

func TestIntegerRange(t *testing.T) {
	v := validation.New()
	rules := validation.Rules{{Field: "id", Tags: "integer"}}

	tests := []struct {
		body  string
		valid bool
	}{
		{`{"id":9007199254740992}`, true},
		{`{"id":-9223372036854775808}`, true},
		{`{"id":9223372036854775808}`, false},
		{`{"id":1e300}`, false},
		{`{"id":-1e300}`, false},
		{`{"id":"9223372036854775808"}`, false},
	}

	for _, tc := range tests {
		t.Run(tc.body, func(t *testing.T) {
			errs := v.Validate(decode(t, tc.body), rules)
			if tc.valid {
				assert.Nil(t, errs)
				return
			}
			assert.Equal(t, validation.Errors{"id": {"El campo id debe ser un número entero."}}, errs)
		})
	}
}

func TestValidateSometimesWithEmptyValue(t *testing.T) {
	v := validation.New()
	rules := validation.Rules{
		{Field: "title", Tags: "string", Sometimes: true},
		{Field: "password", Tags: "string,min=6", Sometimes: true},
		{Field: "userId", Tags: "integer", Sometimes: true},
		{Field: "products", Tags: "array", Sometimes: true},
	}

	errs := v.Validate(decode(t, `{"title":null,"password":"  ","userId":null,"products":[]}`), rules)

	want := validation.Errors{
		"title":    {"El campo title debe ser una cadena de texto."},
		"password": {"El campo password debe ser una cadena de texto."},
		"userId":   {"El campo userId debe ser un número entero."},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}
