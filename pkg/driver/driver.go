// Package driver is the registry of platform drivers. A driver turns the
// events of one platform (a window system, a browser, a terminal) into raw
// events on a loop.Loop.
package driver

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strconv"

	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/raw"
)

// Driver is the interface that wraps the basic methods of a platform
// driver.
type Driver interface {
	// Initialize attaches the driver to the loop it delivers events on.
	Initialize(l *loop.Loop) error
	// Start runs the driver until ctx is done or the platform asks to
	// quit. Drivers that must own the main thread block in Start.
	Start(ctx context.Context) error
	// Stop releases the platform resources.
	Stop() error
	// Target is the geometry pointer positions are relative to.
	Target() raw.Target
	// Locker is the pointer lock capability, nil if the platform has
	// none.
	Locker() raw.Locker
}

// DriverOption is a driver option. This is used to configure a driver
// from the command line.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
	Type        string // "int", "bool", "string", "float"
}

// InstalledDriver is a driver that has been installed.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers lists the installed drivers in install order. Drivers
// call Install from their init function, so which ones are present
// depends on the packages imported by the main program.
var InstalledDrivers []*InstalledDriver

// Get returns the driver with the given name, or nil if no driver with
// that name is installed. "auto" selects the first installed driver.
func Get(name string) Driver {
	if name == "auto" {
		if len(InstalledDrivers) == 0 {
			return nil
		}
		return InstalledDrivers[0].Driver
	}
	for _, d := range InstalledDrivers {
		if d.Name == name {
			return d.Driver
		}
	}
	return nil
}

// Names returns the names of the installed drivers.
func Names() []string {
	names := make([]string, 0, len(InstalledDrivers))
	for _, d := range InstalledDrivers {
		names = append(names, d.Name)
	}
	return names
}

// Install registers a driver with the given name.
func Install(name string, d Driver, options []DriverOption) {
	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  d,
	})
}

// RegisterFlags registers the options of every installed driver with the
// default flag set.
func RegisterFlags() {
	RegisterFlagSet(flag.CommandLine)
}

// RegisterFlagSet registers the options of every installed driver with
// fs. An option offered by a single driver is prefixed with the driver
// name ("web-addr"); an option shared by several drivers is registered
// once, unprefixed, and sets all of them.
func RegisterFlagSet(fs *flag.FlagSet) {
	optionCounts := make(map[string]int)
	opts := make(map[string][]DriverOption)
	prefixes := make(map[string]string)

	for _, d := range InstalledDrivers {
		for _, opt := range d.Options {
			optionCounts[opt.Name]++
			opts[opt.Name] = append(opts[opt.Name], opt)
			prefixes[opt.Name] = d.Name
		}
	}

	names := make([]string, 0, len(optionCounts))
	for name := range optionCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, o := range names {
		first := opts[o][0]
		if optionCounts[o] > 1 {
			multi := &multiValue{defaultValue: first.Default}
			for _, mOpt := range opts[o] {
				multi.values = append(multi.values, mOpt.Value)
				if err := assign(mOpt.Value, first.Default); err != nil {
					panic(fmt.Sprintf("driver option %s: %v", o, err))
				}
			}
			fs.Var(multi, o, first.Description)
			continue
		}

		name := fmt.Sprintf("%s-%s", prefixes[o], first.Name)
		switch first.Type {
		case "string":
			fs.StringVar(first.Value.(*string), name, first.Default.(string), first.Description)
		case "bool":
			fs.BoolVar(first.Value.(*bool), name, first.Default.(bool), first.Description)
		case "float":
			fs.Float64Var(first.Value.(*float64), name, first.Default.(float64), first.Description)
		case "int":
			fs.IntVar(first.Value.(*int), name, first.Default.(int), first.Description)
		}
	}
}

// assign stores v in the option value pointer ptr.
func assign(ptr, v any) error {
	switch p := ptr.(type) {
	case *string:
		*p = v.(string)
	case *bool:
		*p = v.(bool)
	case *float64:
		*p = v.(float64)
	case *int:
		*p = v.(int)
	default:
		return fmt.Errorf("unknown type: %T", ptr)
	}
	return nil
}

type multiValue struct {
	values       []any
	defaultValue any
}

func (m *multiValue) String() string {
	switch v := m.defaultValue.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func (m *multiValue) Set(value string) error {
	// update all the pointers with the provided value
	for _, ptr := range m.values {
		switch p := ptr.(type) {
		case *string:
			*p = value
		case *bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			*p = b
		case *float64:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			*p = f
		case *int:
			i, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			*p = i
		default:
			return fmt.Errorf("unknown type: %T", ptr)
		}
	}
	return nil
}

func (m *multiValue) IsBoolFlag() bool {
	_, isBool := m.defaultValue.(bool)
	return isBool
}
