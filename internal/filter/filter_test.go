package filter

import (
	"testing"
)

func TestApply_EmptyExpressionPassesThrough(t *testing.T) {
	body := []byte(`{"a": 1}`)

	result, err := Apply(body, "")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if string(result) != string(body) {
		t.Errorf("Expected body unchanged, got %s", result)
	}
}

func TestApply_SelectsField(t *testing.T) {
	body := []byte(`{"items": [{"name": "a"}, {"name": "b"}]}`)

	result, err := Apply(body, "items[].name")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if string(result) != `["a","b"]` {
		t.Errorf("Expected [\"a\",\"b\"], got %s", result)
	}
}

func TestApply_InvalidExpression(t *testing.T) {
	_, err := Apply([]byte(`{}`), "items[")
	if err == nil {
		t.Error("Expected error for invalid expression")
	}
}

func TestApply_InvalidJSON(t *testing.T) {
	_, err := Apply([]byte(`not json`), "a")
	if err == nil {
		t.Error("Expected error for invalid JSON body")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("items[].name"); err != nil {
		t.Errorf("Expected valid expression, got %v", err)
	}
	if err := Validate("items["); err == nil {
		t.Error("Expected error for invalid expression")
	}
	if err := Validate(""); err != nil {
		t.Errorf("Expected empty expression to validate, got %v", err)
	}
}
