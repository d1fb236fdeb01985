package criteria

import (
	"github.com/viant/batchos/service/dao"
)

// StatusParameter is the parameter name matched by FilterByStatus.
const StatusParameter = "Status"

// FilterByStatus reports whether status satisfies every Status parameter.
// Parameters with other names are ignored.
func FilterByStatus(status string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != StatusParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if status != actual {
				return false
			}
		case []string:
			if !contains(actual, status) {
				return false
			}
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
