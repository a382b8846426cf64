// Package all registers all command providers.
package all

import (
	_ "github.com/robotalks/picoboot.go/pkg/cli/cmds/device"
	_ "github.com/robotalks/picoboot.go/pkg/cli/cmds/flash"
)
