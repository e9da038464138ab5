// Package naming provides identifier helpers shared by the generator:
// CamelCase tokenising, snake_case file names and "did you mean"
// suggestions for misspelled directive keys.
package naming
