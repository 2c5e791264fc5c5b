// Package autoload registers all built-in channels via their init()
// functions. Import it for side effects from the program entry point.
package autoload

import (
	_ "moa/pkg/channels/telegram"
	_ "moa/pkg/channels/web"
)
