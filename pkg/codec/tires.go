package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cqusn/smartcar/pkg/model"
)

const (
	fieldSep = ","
	tireSep  = ";"
	lineSep  = "\n"
)

// FormatTires renders tires as model,size pairs joined by ';'.
// No tires yields the empty string.
func FormatTires(tires []model.Tire) string {
	var sb strings.Builder
	for i, t := range tires {
		if i > 0 {
			sb.WriteString(tireSep)
		}
		sb.WriteString(t.Model)
		sb.WriteString(fieldSep)
		sb.WriteString(strconv.Itoa(t.Size))
	}
	return sb.String()
}

// ParseTires is the inverse of FormatTires. Empty segments are ignored, so a
// trailing ';' is accepted. A size that is empty or not an integer is an error.
func ParseTires(block string) ([]model.Tire, error) {
	p := &numParser{policy: PolicyStrict}
	return parseTires(block, p.atoi)
}

func parseTires(block string, atoi func(field, s string) (int, error)) ([]model.Tire, error) {
	if block == "" {
		return nil, nil
	}

	var tires []model.Tire
	for _, seg := range strings.Split(block, tireSep) {
		if seg == "" {
			continue
		}
		name, size, _ := strings.Cut(seg, fieldSep)
		n, err := atoi(fmt.Sprintf("tires[%d].size", len(tires)), size)
		if err != nil {
			return nil, err
		}
		tires = append(tires, model.Tire{Model: name, Size: n})
	}
	return tires, nil
}
