// Package app contains the host application. It binds one module system to
// one script context, registers the compiled-in and manifest extensions, and
// runs a script, decoupled from any specific entrypoint like a CLI.
package app
