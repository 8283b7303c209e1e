package http

// viewerPage is the animation shell. It refreshes the frame image on a short
// poll so the server-side timer stays the single source of playback truth.
const viewerPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Rainfall Atlas</title>
<style>
  body { background: #0a0a0a; color: #eee; font-family: sans-serif; margin: 0; text-align: center; }
  img { margin-top: 12px; max-width: 100%; }
  .controls { margin: 12px; }
  button { background: #1e2a33; color: #eee; border: 1px solid #44555f; padding: 6px 14px; margin: 0 4px; cursor: pointer; border-radius: 3px; }
  button:hover { background: #2a3a46; }
  #status { color: #888; font-size: 13px; margin-top: 6px; }
</style>
</head>
<body>
<img id="frame" src="/frame.svg" alt="rainfall animation frame">
<div class="controls">
  <button onclick="post('/pause')">Pause</button>
  <button onclick="post('/resume')">Resume</button>
  <button onclick="setSpeed(1)">1x</button>
  <button onclick="setSpeed(2)">2x</button>
  <button onclick="setSpeed(3)">3x</button>
</div>
<div id="status"></div>
<script>
function post(path, body) {
  return fetch(path, {method: 'POST', body: body}).then(refreshStatus);
}
function setSpeed(mult) {
  var form = new FormData();
  form.append('multiplier', mult);
  post('/speed', form);
}
function refreshStatus() {
  fetch('/stats').then(function (r) { return r.json(); }).then(function (s) {
    document.getElementById('status').textContent =
      'frame ' + (s.frame_index + 1) + ' / ' + s.frame_count +
      ' | ' + s.state + ' | ' + s.speed + 'x';
  });
}
setInterval(function () {
  document.getElementById('frame').src = '/frame.svg?t=' + Date.now();
  refreshStatus();
}, 400);
refreshStatus();
</script>
</body>
</html>
`
