package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const pageScript = `(function () {
  var table = document.getElementById("table");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (e) {
    var m = JSON.parse(e.data);
    if (m.t === "scene") {
      table.innerHTML = m.svg;
    } else if (m.t === "error") {
      console.warn(m.error);
    }
  };
  table.addEventListener("click", function (e) {
    var g = e.target.closest("[data-view]");
    var id = g ? g.dataset.view : table.dataset.root;
    ws.send(JSON.stringify({t: e.shiftKey ? "shuffle" : "click", view: id}));
  });
})();`

// page is the single HTML document: the current table and the script that
// keeps it live. Shift-click shuffles a pile; any other click is reported as
// a click on the view under the pointer.
func page(title, rootID, svg string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		parts := []string{
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`,
			templ.EscapeString(title),
			`</title><style>body{margin:0;background:#0b5d2a}#table{cursor:pointer}</style></head><body>`,
			`<div id="table" data-root="`, templ.EscapeString(rootID), `">`,
			svg,
			`</div><script>`, pageScript, `</script></body></html>`,
		}
		for _, p := range parts {
			if _, err := io.WriteString(w, p); err != nil {
				return err
			}
		}
		return nil
	})
}
