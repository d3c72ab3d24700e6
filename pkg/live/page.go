package live

// clientPage is the thin browser client. It mirrors the server's live
// tree: the first frame carries the whole tree, every later frame carries
// the mutation journal of one update. Events are forwarded by node ID.
const clientPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Reago</title>
</head>
<body>
<div id="app"></div>
<script>
(function () {
  var nodes = {};
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/live");

  function send(nodeID, event, value) {
    ws.send(JSON.stringify({node: nodeID, event: event, value: value || ""}));
  }

  function build(desc) {
    var el;
    if (desc.kind === "text") {
      el = document.createTextNode(desc.text || "");
    } else if (desc.kind === "comment") {
      el = document.createComment(desc.text || "");
    } else if (desc.kind === "fragment") {
      el = document.createElement("reago-fragment");
      el.style.display = "contents";
    } else {
      el = document.createElement(desc.tag);
    }
    if (desc.id) {
      nodes[desc.id] = el;
    }
    if (desc.attrs) {
      for (var k in desc.attrs) el.setAttribute(k, desc.attrs[k]);
    }
    if (desc.styles) {
      for (var k in desc.styles) el.style.setProperty(k, desc.styles[k]);
    }
    if (desc.events) {
      desc.events.forEach(function (ev) { listen(el, desc.id, ev); });
    }
    (desc.children || []).forEach(function (c) { el.appendChild(build(c)); });
    return el;
  }

  function listen(el, id, ev) {
    el.addEventListener(ev, function (e) {
      if (ev === "submit") e.preventDefault();
      var value = "";
      if (e.target && e.target.value !== undefined) value = String(e.target.value);
      if (e.key !== undefined) value = e.key;
      send(id, ev, value);
    });
  }

  function apply(m) {
    var el = nodes[m.node];
    switch (m.op) {
    case "set-text":
      if (el) el.textContent = m.value;
      break;
    case "set-attr":
      if (el) el.setAttribute(m.key, m.value);
      break;
    case "remove-attr":
      if (el) el.removeAttribute(m.key);
      break;
    case "set-style":
      if (el) el.style.setProperty(m.key, m.value);
      break;
    case "remove-style":
      if (el) el.style.removeProperty(m.key);
      break;
    case "insert-node": {
      var parent = nodes[m.parent];
      if (!parent) break;
      var fresh = build(m.tree);
      var ref = parent.childNodes[m.index];
      parent.insertBefore(fresh, ref || null);
      break;
    }
    case "remove-node":
      if (el && el.parentNode) el.parentNode.removeChild(el);
      forget(m.node);
      break;
    case "move-node": {
      var parent = nodes[m.parent];
      if (!parent || !el) break;
      // The index is relative to the child list without the moving
      // node, so detach it before resolving the reference sibling.
      parent.removeChild(el);
      var ref = parent.childNodes[m.index];
      parent.insertBefore(el, ref || null);
      break;
    }
    case "replace-node": {
      if (!el || !el.parentNode) break;
      var fresh = build(m.tree);
      el.parentNode.replaceChild(fresh, el);
      forget(m.node);
      break;
    }
    }
  }

  function forget(id) {
    delete nodes[id];
  }

  ws.onmessage = function (msg) {
    var f = JSON.parse(msg.data);
    if (f.type === "tree") {
      var app = document.getElementById("app");
      app.textContent = "";
      app.appendChild(build(f.root));
    } else if (f.type === "mutations") {
      (f.mutations || []).forEach(apply);
    }
  };
})();
</script>
</body>
</html>
`
