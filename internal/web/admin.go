package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Admin() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <meta name="robots" content="noindex, nofollow"/>
    <title>Submission Review</title>
  </head>
  <body>
    <main class="shell">
      <h1>Submission Review</h1>
      <div>
        <input id="token" type="password" placeholder="Admin token"/>
        <button id="load">Load queue</button>
        <button id="clear-cache">Clear catalog cache</button>
      </div>
      <div id="queue"></div>
    </main>
    <script>
    function token() { return document.getElementById("token").value; }

    async function loadQueue() {
      const resp = await fetch("/api/admin/submissions", {headers: {"X-Admin-Token": token()}});
      const body = await resp.json();
      const el = document.getElementById("queue");
      if (!resp.ok) { el.textContent = body.error || "failed"; return; }
      el.innerHTML = "";
      for (const sub of body.submissions) {
        const row = document.createElement("div");
        row.className = "submission";
        const data = sub.data || {};
        row.innerHTML =
          "<strong>#" + sub.id + "</strong> [" + sub.status + "] " +
          (sub.csnades_url ? '<a href="' + sub.csnades_url + '">' + sub.csnades_url + "</a> " : "") +
          (sub.map ? "map=" + sub.map + " " : "") +
          (sub.side ? "side=" + sub.side + " " : "") +
          (data.lineup_name ? "name=" + data.lineup_name + " " : "") +
          (data.has_screenshots ? "[screenshots] " : "") +
          "submitted " + sub.submitted_at + " ";
        for (const status of ["approved", "rejected", "deleted"]) {
          const btn = document.createElement("button");
          btn.textContent = status;
          btn.addEventListener("click", () => review(sub.id, status));
          row.appendChild(btn);
        }
        el.appendChild(row);
      }
    }

    async function review(id, status) {
      if (status === "deleted" && !confirm("Delete submission #" + id + " and its staged files?")) return;
      const resp = await fetch("/api/admin/review", {
        method: "POST",
        headers: {"Content-Type": "application/json", "X-Admin-Token": token()},
        body: JSON.stringify({id: id, status: status}),
      });
      const body = await resp.json();
      if (!resp.ok) { alert(body.error || "review failed"); }
      loadQueue();
    }

    document.getElementById("load").addEventListener("click", loadQueue);
    document.getElementById("clear-cache").addEventListener("click", async () => {
      const resp = await fetch("/api/admin/cache/clear", {method: "POST", headers: {"X-Admin-Token": token()}});
      const body = await resp.json();
      if (!resp.ok) { alert(body.error || "failed"); }
    });
    </script>
  </body>
</html>`)
		return err
	})
}
