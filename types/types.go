package types

// JSON is a generic decoded document.
type JSON = map[string]any

// JSONArray is an array of generic documents.
type JSONArray = []JSON
