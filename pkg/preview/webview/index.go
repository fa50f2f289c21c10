package webview

import "net/http"

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Live path tracer</title>
<style>
body { background: #111; color: #ccc; font-family: monospace; }
img { image-rendering: pixelated; border: 1px solid #333; }
</style>
</head>
<body>
<div><img id="frame" src="/api/frame.png"></div>
<div id="status">connecting</div>
<button id="stop">Stop render</button>
<script>
const frame = document.getElementById("frame");
const status = document.getElementById("status");
const events = new EventSource("/api/stream");
events.addEventListener("progress", (e) => {
  const update = JSON.parse(e.data);
  frame.src = "data:image/png;base64," + update.imageData;
  status.textContent = "update " + update.sequence + " at " + (update.elapsedMs / 1000).toFixed(1) + "s";
});
events.addEventListener("complete", () => {
  status.textContent = "render stopped";
  events.close();
});
document.getElementById("stop").onclick = () => fetch("/api/stop", { method: "POST" });
</script>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}
