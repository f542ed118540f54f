package buildinfo

import "fmt"

const Graffiti = "   _   _   _        _ _   _\n  /_\\ | |_| |_ _ _ (_) |_(_)___ _ _\n / _ \\|  _|  _| '_|| |  _| / _ \\ ' \\\n/_/ \\_\\\\__|\\__|_|  |_|\\__|_\\___/_||_|\n\n"

// Set with -ldflags "-X github.com/go-sod/attrition/internal/buildinfo.BuildTag=...".
var (
	BuildTag = "v0.0.0"
	Name     = "ATTRITION"
	Time     = ""
)

type info struct{}

func (info) Tag() string  { return BuildTag }
func (info) Name() string { return Name }
func (info) Time() string { return Time }

func (i info) String() string {
	if i.Time() == "" {
		return fmt.Sprintf("%s %s", i.Name(), i.Tag())
	}
	return fmt.Sprintf("%s %s, built %s", i.Name(), i.Tag(), i.Time())
}

var Info info
