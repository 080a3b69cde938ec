package generator

import (
	"fmt"
	"strings"
)

// paramDoc renders one numpydoc parameter entry
func paramDoc(argName, label string, optional bool, methodName string, docs []string) string {
	entry := argName + " : " + label
	if optional {
		entry += ", optional"
	}

	desc := fmt.Sprintf("See `%s`.", methodName)
	if len(docs) > 0 {
		desc = strings.Join(docs, "\n    ")
	}

	return entry + "\n    " + desc
}

// composeDocstring builds the constructor documentation. The parameter
// section is omitted when there are no parameters.
func composeDocstring(name string, params []string) string {
	if len(params) == 0 {
		return fmt.Sprintf("Create a new %s.\n\nReturns\n-------\n%s", name, name)
	}
	return fmt.Sprintf("Create a new %s.\n\nParameters\n----------\n%s\n\nReturns\n-------\n%s",
		name, strings.Join(params, "\n"), name)
}
