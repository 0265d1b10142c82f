package sink

import (
	"bytes"
	"encoding/json"
	"html/template"
	"time"

	"github.com/matzehuels/jsontree/pkg/tree"
)

// HTMLOptions configures [RenderHTML].
type HTMLOptions struct {
	Title string

	// Source is the document text shown in the editor.
	Source string

	// Endpoint is the workspace URL on the HTTP server, for example
	// "/api/workspaces/<id>". When set, the page regenerates and searches
	// through the API; otherwise it searches the embedded nodes and the
	// editor is read-only.
	Endpoint string

	FitPadding      float64
	CenterZoom      float64
	CenterDuration  time.Duration
	HighlightBorder string
}

func (o *HTMLOptions) defaults() {
	if o.Title == "" {
		o.Title = "JSON Tree"
	}
	if o.FitPadding == 0 {
		o.FitPadding = 0.2
	}
	if o.CenterZoom == 0 {
		o.CenterZoom = 1.4
	}
	if o.CenterDuration == 0 {
		o.CenterDuration = 500 * time.Millisecond
	}
	if o.HighlightBorder == "" {
		o.HighlightBorder = tree.DefaultBase().HighlightBorder
	}
}

type pageConfig struct {
	Endpoint  string  `json:"endpoint"`
	Padding   float64 `json:"padding"`
	Zoom      float64 `json:"zoom"`
	Duration  int64   `json:"duration"`
	HighWidth float64 `json:"highlightWidth"`
	HighColor string  `json:"highlightColor"`
}

// RenderHTML produces a standalone page showing d.
func RenderHTML(d tree.Diagram, opts HTMLOptions) ([]byte, error) {
	opts.defaults()

	flow, err := RenderJSON(d)
	if err != nil {
		return nil, err
	}
	hb := parseBorder(opts.HighlightBorder)
	cfg, err := json.Marshal(pageConfig{
		Endpoint:  opts.Endpoint,
		Padding:   opts.FitPadding,
		Zoom:      opts.CenterZoom,
		Duration:  opts.CenterDuration.Milliseconds(),
		HighWidth: hb.Width,
		HighColor: hb.Color,
	})
	if err != nil {
		return nil, err
	}

	data := struct {
		Title    string
		Source   string
		Editable bool
		SVG      template.HTML
		Flow     template.JS
		Config   template.JS
	}{
		Title:    opts.Title,
		Source:   opts.Source,
		Editable: opts.Endpoint != "",
		SVG:      template.HTML(RenderSVG(d)),
		Flow:     template.JS(flow),
		Config:   template.JS(cfg),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #0f172a;
            color: #e2e8f0;
            display: flex;
            height: 100vh;
        }
        #sidebar {
            width: 360px;
            display: flex;
            flex-direction: column;
            gap: 8px;
            padding: 12px;
            background: #1e293b;
        }
        #source {
            flex: 1;
            font-family: ui-monospace, monospace;
            font-size: 12px;
            background: #0f172a;
            color: #e2e8f0;
            border: 1px solid #334155;
            padding: 8px;
            resize: none;
        }
        .row { display: flex; gap: 6px; }
        input, button {
            font-size: 13px;
            padding: 6px 10px;
            border-radius: 6px;
            border: 1px solid #334155;
            background: #0f172a;
            color: #e2e8f0;
        }
        input { flex: 1; }
        button { cursor: pointer; background: #7c3aed; border-color: #7c3aed; }
        #status { font-size: 12px; min-height: 16px; color: #94a3b8; }
        #status.error { color: #f87171; }
        #canvas { flex: 1; overflow: hidden; cursor: grab; }
        #canvas svg { width: 100%; height: 100%; }
    </style>
</head>
<body>
    <div id="sidebar">
        <textarea id="source" spellcheck="false"{{if not .Editable}} readonly{{end}}>{{.Source}}</textarea>
        {{if .Editable}}<button id="generate">Generate Tree</button>{{end}}
        <div class="row">
            <input id="query" placeholder="$.user.address.city">
            <button id="search">Find</button>
            <button id="fit">Fit</button>
        </div>
        <div id="status"></div>
    </div>
    <div id="canvas">{{.SVG}}</div>
    <script>
    (function() {
        const config = {{.Config}};
        let flow = {{.Flow}};
        let svg = document.querySelector('#canvas svg');
        let base = null;
        let view = null;
        let anim = null;

        const status = document.getElementById('status');
        function say(msg, isError) {
            status.textContent = msg || '';
            status.className = isError ? 'error' : '';
        }

        function encode(path) {
            const tokens = { '.': '_dot_', '[': '_brk_', ']': '_' };
            return path.replace(/[.\[\]]/g, c => tokens[c]);
        }

        function setView(v) {
            view = v;
            svg.setAttribute('viewBox', v.x + ' ' + v.y + ' ' + v.w + ' ' + v.h);
        }

        function fitView() {
            const vb = svg.viewBox.baseVal;
            base = { x: 0, y: 0, w: vb.width || 1, h: vb.height || 1 };
            const px = base.w * config.padding / 2, py = base.h * config.padding / 2;
            if (anim) cancelAnimationFrame(anim);
            setView({ x: -px, y: -py, w: base.w + 2 * px, h: base.h + 2 * py });
        }

        function setCenter(x, y, zoom, duration) {
            const w = base.w / zoom, h = base.h / zoom;
            const target = { x: x - w / 2, y: y - h / 2, w: w, h: h };
            const from = Object.assign({}, view);
            const t0 = performance.now();
            if (anim) cancelAnimationFrame(anim);
            function step(now) {
                const t = duration > 0 ? Math.min(1, (now - t0) / duration) : 1;
                const e = t * (2 - t);
                setView({
                    x: from.x + (target.x - from.x) * e,
                    y: from.y + (target.y - from.y) * e,
                    w: from.w + (target.w - from.w) * e,
                    h: from.h + (target.h - from.h) * e,
                });
                if (t < 1) anim = requestAnimationFrame(step);
            }
            anim = requestAnimationFrame(step);
        }

        function highlight(id) {
            svg.querySelectorAll('g.node').forEach(g => {
                const rect = g.querySelector('rect');
                if (!rect.dataset.stroke) {
                    rect.dataset.stroke = rect.getAttribute('stroke') || '';
                    rect.dataset.strokeWidth = rect.getAttribute('stroke-width') || '';
                }
                const on = g.id === id;
                g.classList.toggle('highlight', on);
                rect.setAttribute('stroke', on ? config.highlightColor : rect.dataset.stroke);
                rect.setAttribute('stroke-width', on ? config.highlightWidth : rect.dataset.strokeWidth);
            });
        }

        function install(markup) {
            document.getElementById('canvas').innerHTML = markup;
            svg = document.querySelector('#canvas svg');
            fitView();
        }

        async function fail(res) {
            try {
                const body = await res.json();
                return body.message || res.statusText;
            } catch (e) {
                return res.statusText;
            }
        }

        async function generate() {
            const text = document.getElementById('source').value;
            const res = await fetch(config.endpoint, { method: 'PUT', body: text });
            if (!res.ok) {
                alert(await fail(res));
                return;
            }
            const body = await res.json();
            config.padding = body.fitView.padding;
            flow = await (await fetch(config.endpoint)).json();
            install(await (await fetch(config.endpoint + '/svg')).text());
            say('');
        }

        function centerOn(c) {
            setTimeout(() => setCenter(c.x, c.y, c.zoom, c.duration), 80);
        }

        async function search() {
            const query = document.getElementById('query').value;
            if (!query.trim()) {
                say('Enter a path like $.user.address.city or $.items[0].name', true);
                return;
            }
            if (config.endpoint) {
                const res = await fetch(config.endpoint + '/search', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ query: query }),
                });
                if (!res.ok) {
                    say(await fail(res), true);
                    return;
                }
                const body = await res.json();
                highlight(body.id);
                say(body.query);
                centerOn(body.center);
                return;
            }
            const id = encode(query.trim());
            const node = flow.nodes.find(n => n.id === id);
            if (!node) {
                say('No match found', true);
                return;
            }
            highlight(id);
            say(query.trim());
            centerOn({ x: node.position.x, y: node.position.y, zoom: config.zoom, duration: config.duration });
        }

        let drag = null;
        const canvas = document.getElementById('canvas');
        canvas.addEventListener('mousedown', e => { drag = { x: e.clientX, y: e.clientY }; });
        window.addEventListener('mouseup', () => { drag = null; });
        window.addEventListener('mousemove', e => {
            if (!drag) return;
            const scale = view.w / canvas.clientWidth;
            setView({ x: view.x - (e.clientX - drag.x) * scale, y: view.y - (e.clientY - drag.y) * scale, w: view.w, h: view.h });
            drag = { x: e.clientX, y: e.clientY };
        });
        canvas.addEventListener('wheel', e => {
            e.preventDefault();
            const k = e.deltaY > 0 ? 1.1 : 1 / 1.1;
            const cx = view.x + view.w / 2, cy = view.y + view.h / 2;
            setView({ x: cx - view.w * k / 2, y: cy - view.h * k / 2, w: view.w * k, h: view.h * k });
        }, { passive: false });

        document.getElementById('search').addEventListener('click', search);
        document.getElementById('query').addEventListener('keydown', e => { if (e.key === 'Enter') search(); });
        document.getElementById('fit').addEventListener('click', fitView);
        const gen = document.getElementById('generate');
        if (gen) gen.addEventListener('click', generate);

        fitView();
    })();
    </script>
</body>
</html>
`
