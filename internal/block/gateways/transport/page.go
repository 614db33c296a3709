package transport

import "html/template"

// blockedPageData feeds the block page template. EndsAtUnixMs drives the
// client-side countdown refresh for quick blocks; zero means no live
// countdown and the rendered text stands as-is.
type blockedPageData struct {
	Message      string
	Countdown    string
	EndsAtUnixMs int64
	HomeURL      string
	GoesHome     bool
}

var blockedPageTmpl = template.Must(template.New("blocked").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Blocked</title>
<style>
body { font-family: system-ui, sans-serif; display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; background: #111; color: #eee; }
main { text-align: center; max-width: 32rem; padding: 2rem; }
#countdown { font-size: 2rem; font-variant-numeric: tabular-nums; margin: 1rem 0; }
button.button { display: inline-block; padding: 0.5rem 1.5rem; border: 1px solid #888; border-radius: 0.25rem; background: none; font: inherit; color: inherit; cursor: pointer; }
</style>
</head>
<body>
<main>
<p>{{.Message}}</p>
{{if .Countdown}}<div id="countdown" data-ends-at="{{.EndsAtUnixMs}}">{{.Countdown}}</div>{{end}}
{{if .GoesHome}}<button class="button" id="go-home">Go home</button>{{else}}<button class="button" onclick="history.back()">Go back</button>{{end}}
</main>
<script>
(function () {
  var el = document.getElementById("countdown");
  if (el) {
    var endsAt = parseInt(el.dataset.endsAt, 10);
    if (endsAt > 0) {
      var timer = setInterval(function () {
        fetch("/countdown?quickBlockEndTime=" + endsAt)
          .then(function (r) { return r.json(); })
          .then(function (c) {
            el.textContent = c.countdown;
            if (c.expired) { clearInterval(timer); }
          })
          .catch(function () {});
      }, 1000);
    }
  }
  var home = document.getElementById("go-home");
  if (home) {
    home.addEventListener("click", function () {
      fetch("/nav/home", { method: "POST" })
        .then(function (r) { return r.json(); })
        .then(function (a) { window.location = a.redirect; })
        .catch(function () {});
    });
  }
})();
</script>
</body>
</html>
`))
