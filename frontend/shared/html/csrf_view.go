package html

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	// CSRFCookieName carries the double-submit token the server checks.
	CSRFCookieName = "X-CSRF-Token"
	CSRFFormField  = "_csrf"
)

// CSRFFormScript adds the token from the CSRF cookie to every POST form at
// submit time, so forms rendered after load are covered too.
func CSRFFormScript() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(ctx, w)
		hw.Raw(`<script>
(function () {
  var cookieName = "` + CSRFCookieName + `";
  var field = "` + CSRFFormField + `";

  function token() {
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf(cookieName + "=") === 0) return decodeURIComponent(c.substring(cookieName.length + 1));
    }
    return "";
  }

  document.addEventListener("submit", function (ev) {
    var form = ev.target;
    if (!form || (form.getAttribute("method") || "GET").toUpperCase() !== "POST") return;
    var value = token();
    if (!value) return;
    var input = form.querySelector("input[name='" + field + "']");
    if (!input) {
      input = document.createElement("input");
      input.type = "hidden";
      input.name = field;
      form.appendChild(input);
    }
    input.value = value;
  }, true);
})();
</script>`)
		return hw.Err()
	})
}
