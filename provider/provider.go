// Package provider holds the translation backends a Localizer can send pages to.
package provider

import "github.com/apiglot/apiglot"

// Translator is an alias to the main package interface.
type Translator = apiglot.Translator

// TranslateRequest is an alias to the main package type.
type TranslateRequest = apiglot.TranslateRequest

// Names of the available backends, as used in the config file.
const (
	NameAPI    = "apiglot"
	NameOpenAI = "openai"
)
