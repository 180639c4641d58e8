package web

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func Index(cards []LineupCard, loggedIn bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, indexHead); err != nil {
			return err
		}
		if loggedIn {
			if _, err := io.WriteString(w, `<div class="session"><span>Logged in.</span> <button id="logout">Log out</button></div>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<div class="session"><input id="nickname" placeholder="Nickname (3+ chars)" maxlength="32"/> <button id="login">Log in</button></div>`); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<p class="count"><span id="visible-count">%d</span> / %d lineups</p><div id="cards">`, len(cards), len(cards)); err != nil {
			return err
		}
		for _, card := range cards {
			if err := writeCard(w, card); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`+indexScript); err != nil {
			return err
		}
		return nil
	})
}

func writeCard(w io.Writer, card LineupCard) error {
	bookmarkLabel := "&#9734;"
	if card.Bookmarked {
		bookmarkLabel = "&#9733;"
	}
	movementTag := ""
	if card.Movement != "" && card.Movement != "stationary" {
		movementTag = `<span class="tag">` + esc(card.Movement) + `</span>`
	}
	consoleBlock := ""
	if card.Console != "" {
		consoleBlock = `<code class="console-cmd" title="Click to copy">` + esc(card.Console) + `</code>`
	}
	_, err := fmt.Fprintf(w, `<div class="nade-card" data-map="%s" data-side="%s" data-slug="%s">
  <div class="card-header">
    <img class="card-thumb" src="%s/lineup.webp" alt="%s" loading="lazy" onerror="this.src='%s/aim.jpg'">
    <div class="card-info">
      <h3>%s</h3>
      <span class="tag map-%s">%s</span>
      <span class="tag side-%s">%s</span>
      <span class="tag">%s</span>
      %s
    </div>
    <button class="bookmark-btn" data-slug="%s">%s</button>
  </div>
  <div class="card-detail" style="display:none">
    <div class="frames">
      <div class="frame"><img src="%s/position.jpg" alt="Position" loading="lazy"><p>%s</p></div>
      <div class="frame"><img src="%s/aim.jpg" alt="Aim" loading="lazy"><p>%s</p></div>
      <div class="frame"><img src="%s/result.jpg" alt="Result" loading="lazy"><p>Result</p></div>
    </div>
    %s
    <a class="source-link" href="%s" target="_blank" rel="noopener">View on csnades.gg &#8599;</a>
  </div>
</div>`,
		esc(card.Map), esc(card.Side), esc(card.Slug),
		esc(card.FrameBase), esc(card.Title), esc(card.FrameBase),
		esc(card.Title),
		esc(card.Map), esc(card.Map),
		esc(card.Side), esc(card.SideLabel),
		esc(card.Technique),
		movementTag,
		esc(card.Slug), bookmarkLabel,
		esc(card.FrameBase), esc(card.CaptionPosition),
		esc(card.FrameBase), esc(card.CaptionAim),
		esc(card.FrameBase),
		consoleBlock,
		esc(card.SourceURL),
	)
	return err
}

const indexHead = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <meta name="robots" content="noindex, nofollow"/>
    <title>CS2 Grenade Lineups</title>
    <link rel="stylesheet" href="/data/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <h1>CS2 Grenade Lineups</h1>
      <p class="subtitle">Recommended lineups scraped from <a href="https://csnades.gg">csnades.gg</a></p>
`

const indexScript = `<script>
document.querySelectorAll(".card-header").forEach(header => {
  header.addEventListener("click", e => {
    if (e.target.closest(".bookmark-btn")) return;
    const detail = header.nextElementSibling;
    detail.style.display = detail.style.display === "none" ? "block" : "none";
  });
});

document.querySelectorAll(".bookmark-btn").forEach(btn => {
  btn.addEventListener("click", async e => {
    e.stopPropagation();
    const resp = await fetch("/api/bookmarks/toggle", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({slug: btn.dataset.slug}),
    });
    const body = await resp.json();
    if (resp.ok) {
      btn.innerHTML = body.bookmarked ? "&#9733;" : "&#9734;";
    } else {
      alert(body.error || "bookmark failed");
    }
  });
});

const loginBtn = document.getElementById("login");
if (loginBtn) {
  loginBtn.addEventListener("click", async () => {
    const nickname = document.getElementById("nickname").value;
    const resp = await fetch("/api/login", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({nickname}),
    });
    const body = await resp.json();
    if (resp.ok) { location.reload(); } else { alert(body.error || "login failed"); }
  });
}

const logoutBtn = document.getElementById("logout");
if (logoutBtn) {
  logoutBtn.addEventListener("click", async () => {
    await fetch("/api/logout", {method: "POST"});
    location.reload();
  });
}

document.querySelectorAll(".console-cmd").forEach(el => {
  el.addEventListener("click", e => {
    e.stopPropagation();
    navigator.clipboard.writeText(el.textContent);
  });
});
</script>
  </main>
  </body>
</html>`
