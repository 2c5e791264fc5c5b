// Package autoload registers all built-in LLM providers via their init()
// functions. Import it for side effects from the program entry point.
package autoload

import (
	_ "moa/pkg/llm/gemini"
	_ "moa/pkg/llm/ollama"
	_ "moa/pkg/llm/openailm"
)
