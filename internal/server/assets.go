package server

// dashboardHTML is the embedded single-page dashboard. It polls the API
// every 30 seconds.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>taskslip</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 860px; color: #222; }
  h1 { font-size: 1.4rem; }
  .cards { display: flex; gap: 1rem; margin-bottom: 1.5rem; flex-wrap: wrap; }
  .card { border: 1px solid #ddd; border-radius: 8px; padding: .8rem 1.2rem; min-width: 7rem; }
  .card .num { font-size: 1.6rem; font-weight: 600; }
  .card .label { color: #777; font-size: .8rem; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: .45rem .6rem; border-bottom: 1px solid #eee; font-size: .9rem; }
  .p-high { color: #c0392b; font-weight: 600; }
  .p-medium { color: #b8860b; }
  .p-low { color: #27805d; }
  .s-done { text-decoration: line-through; color: #999; }
  form, .search { margin: 1rem 0; display: flex; gap: .5rem; }
  input, select, button { padding: .4rem .6rem; font-size: .9rem; }
  input[name=name], input[name=q] { flex: 1; }
  button { cursor: pointer; }
</style>
</head>
<body>
<h1>taskslip</h1>
<div class="cards">
  <div class="card"><div class="num" id="stat-total">-</div><div class="label">total</div></div>
  <div class="card"><div class="num" id="stat-high">-</div><div class="label">high</div></div>
  <div class="card"><div class="num" id="stat-medium">-</div><div class="label">medium</div></div>
  <div class="card"><div class="num" id="stat-low">-</div><div class="label">low</div></div>
  <div class="card"><div class="num" id="stat-due">-</div><div class="label">due today</div></div>
</div>
<form id="add-form">
  <input name="name" placeholder="New task..." required>
  <select name="priority">
    <option value="high">High</option>
    <option value="medium" selected>Medium</option>
    <option value="low">Low</option>
  </select>
  <input name="due_date" type="date">
  <button type="submit">Add</button>
</form>
<div class="search">
  <input name="q" id="search-q" placeholder="Search similar tasks...">
  <button id="search-btn">Search</button>
  <button id="clear-btn">Clear</button>
</div>
<table>
  <thead><tr><th>Task</th><th>Status</th><th>Priority</th><th>Due</th><th></th></tr></thead>
  <tbody id="task-rows"></tbody>
</table>
<script>
async function loadStats() {
  const r = await fetch('/api/stats');
  const s = await r.json();
  document.getElementById('stat-total').textContent = s.total;
  document.getElementById('stat-high').textContent = s.high_priority;
  document.getElementById('stat-medium').textContent = s.medium_priority;
  document.getElementById('stat-low').textContent = s.low_priority;
  document.getElementById('stat-due').textContent = s.due_today;
}
function render(tasks) {
  const rows = document.getElementById('task-rows');
  rows.innerHTML = '';
  for (const t of tasks) {
    const tr = document.createElement('tr');
    const dist = t.similarity_distance != null ? ' (' + t.similarity_distance.toFixed(3) + ')' : '';
    tr.innerHTML =
      '<td class="' + (t.status === 'done' ? 's-done' : '') + '">' + t.name + dist + '</td>' +
      '<td>' + t.status + '</td>' +
      '<td class="p-' + t.priority + '">' + t.priority + '</td>' +
      '<td>' + (t.due_date || '') + '</td>' +
      '<td><button data-id="' + t.id + '" class="done-btn">done</button> ' +
      '<button data-id="' + t.id + '" class="del-btn">delete</button></td>';
    rows.appendChild(tr);
  }
}
async function loadTasks() {
  const r = await fetch('/api/tasks');
  const body = await r.json();
  render(body.tasks);
}
async function refresh() { await Promise.all([loadTasks(), loadStats()]); }
document.getElementById('add-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const f = new FormData(e.target);
  await fetch('/api/tasks', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({name: f.get('name'), priority: f.get('priority'), due_date: f.get('due_date')})
  });
  e.target.reset();
  refresh();
});
document.getElementById('search-btn').addEventListener('click', async () => {
  const q = document.getElementById('search-q').value;
  if (!q) return;
  const r = await fetch('/api/tasks/search?q=' + encodeURIComponent(q));
  const body = await r.json();
  render(body.tasks);
});
document.getElementById('clear-btn').addEventListener('click', () => {
  document.getElementById('search-q').value = '';
  refresh();
});
document.body.addEventListener('click', async (e) => {
  if (e.target.classList.contains('done-btn')) {
    await fetch('/api/tasks/' + e.target.dataset.id + '/status', {
      method: 'PATCH',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({status: 'done'})
    });
    refresh();
  } else if (e.target.classList.contains('del-btn')) {
    await fetch('/api/tasks/' + e.target.dataset.id, {method: 'DELETE'});
    refresh();
  }
});
refresh();
setInterval(refresh, 30000);
</script>
</body>
</html>`
