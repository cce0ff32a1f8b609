package transport

import (
	"net/http"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand renders a request as an equivalent curl command line, for debug output. The
// headers are those the Transport was configured with.
func CurlCommand(method, url string, headers http.Header, body interface{}) string {
	data, err := encodeBody(body)
	if err != nil {
		data = nil
	}
	effective := make(http.Header)
	applyHeaders(effective, headers, data != nil)

	var cmd commandBuilder
	cmd.add("curl", "-X", method)
	keys := make([]string, 0, len(effective))
	for k := range effective {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range effective[k] {
			cmd.add("-H", k+": "+v)
		}
	}
	if data != nil {
		cmd.add("-d", string(data))
	}
	cmd.add(url)
	return cmd.String()
}
