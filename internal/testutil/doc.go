// Package testutil holds helpers shared by package tests: a context carrying
// a captured logger and a temp-dir writer for scene files. It must not import
// any package it is used to test.
package testutil
