// Package testsupport provides shared fixtures for package tests: temp-dir
// configs, throwaway stores, and generated image files.
package testsupport
