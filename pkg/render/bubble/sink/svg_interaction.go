package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/bubblechart/pkg/render/bubble"
)

// Zoom limits for the interactive script.
const (
	MinZoom = 0.125
	MaxZoom = 32.0
)

const interactionCSS = `
    svg.bubblechart { user-select: none; touch-action: none; }
    .bubble { cursor: pointer; transition: fill-opacity 0.12s ease, stroke-width 0.12s ease; }
    .tooltip { pointer-events: none; transition: opacity 0.18s ease; }
    .tooltip[visibility=hidden] { opacity: 0; }
    .tooltip[visibility=visible] { opacity: 1; }
    .store-label, .quadrant-label, .legend { pointer-events: none; }`

const interactionJS = `
    (() => {
      const svg = document.querySelector('svg.bubblechart');
      const ds = svg.dataset;
      const NS = 'http://www.w3.org/2000/svg';
      const W = +ds.width, H = +ds.height, left = +ds.left, top = +ds.top;
      const pw = +ds.plotW, ph = +ds.plotH;
      const xd = ds.xDomain.split(',').map(Number), yd = ds.yDomain.split(',').map(Number);
      const xLog = ds.xLog === 'true';
      const state = { k: +ds.k || 1, x: +ds.tx || 0, y: +ds.ty || 0 };

      const lg = (v) => Math.log10(v);
      const baseX = (v) => xLog
        ? (v > 0 ? (lg(v) - lg(xd[0])) / (lg(xd[1]) - lg(xd[0])) * pw : 0)
        : (v - xd[0]) / (xd[1] - xd[0]) * pw;
      const baseY = (v) => ph - (v - yd[0]) / (yd[1] - yd[0]) * ph;
      const invX = (p) => xLog
        ? Math.pow(10, lg(xd[0]) + p / pw * (lg(xd[1]) - lg(xd[0])))
        : xd[0] + p / pw * (xd[1] - xd[0]);
      const invY = (p) => yd[0] + (ph - p) / ph * (yd[1] - yd[0]);

      function niceStep(lo, hi, n) {
        const mag = Math.pow(10, Math.floor(Math.log10(Math.abs(hi - lo) / (n - 1))));
        let best = mag, score = Infinity;
        for (const c of [1, 2, 2.5, 5, 10]) {
          const s = c * mag;
          const d = Math.abs(Math.floor(hi / s + 1e-9) - Math.ceil(lo / s - 1e-9) + 1 - n);
          if (d < score) { score = d; best = s; }
        }
        return best;
      }
      function niceTicks(lo, hi, n) {
        if (lo > hi) [lo, hi] = [hi, lo];
        if (hi === lo) return [lo];
        const step = niceStep(lo, hi, n);
        const dec = Math.max(0, -Math.floor(Math.log10(step)) + 1);
        const out = [];
        for (let i = Math.ceil(lo / step - 1e-9); i <= Math.floor(hi / step + 1e-9); i++) out.push(+(i * step).toFixed(dec));
        return out;
      }
      function logTicks(lo, hi, n) {
        if (!(lo > 0) || !(hi > 0)) return [];
        if (lo > hi) [lo, hi] = [hi, lo];
        const e0 = Math.floor(lg(lo)), e1 = Math.ceil(lg(hi));
        const collect = (mults) => {
          const out = [];
          for (let e = e0; e <= e1; e++) for (const m of mults) {
            const v = m * Math.pow(10, e);
            if (v >= lo * (1 - 1e-9) && v <= hi * (1 + 1e-9)) out.push(v);
          }
          return out;
        };
        let t = collect([1]);
        if (t.length < 3) t = collect([1, 2, 5]);
        return t.length < 3 ? niceTicks(lo, hi, n) : t;
      }

      const grouped = new Intl.NumberFormat('en-US', { maximumFractionDigits: 12 });
      const whole = new Intl.NumberFormat('en-US', { maximumFractionDigits: 0 });
      function fmt(v, kind) {
        if (kind === 'currency') {
          const s = whole.format(Math.abs(v));
          return (v < 0 && s !== '0' ? '-' : '') + ds.currency + s;
        }
        if (kind === 'percent') return whole.format(Math.round(v * 100)) + '%';
        return grouped.format(v);
      }

      function el(tag, attrs, text) {
        const e = document.createElementNS(NS, tag);
        for (const [k, v] of Object.entries(attrs)) e.setAttribute(k, v);
        if (text !== undefined) e.textContent = text;
        return e;
      }

      function axis(name, values, pos, kind) {
        const grid = svg.querySelector('.grid-' + name);
        const group = svg.querySelector('.axis-' + name);
        const ticks = group.querySelector('.ticks');
        const stroke = group.querySelector('.domain').getAttribute('stroke');
        grid.replaceChildren();
        ticks.replaceChildren();
        for (const v of values) {
          const p = pos(v).toFixed(2);
          if (name === 'x') {
            grid.appendChild(el('line', { x1: p, y1: 0, x2: p, y2: ph }));
            ticks.appendChild(el('line', { x1: p, y1: 0, x2: p, y2: __TICK__, stroke }));
            ticks.appendChild(el('text', { x: p, y: __XLABEL__, 'text-anchor': 'middle' }, fmt(v, kind)));
          } else {
            grid.appendChild(el('line', { x1: 0, y1: p, x2: pw, y2: p }));
            ticks.appendChild(el('line', { x1: -__TICK__, y1: p, x2: 0, y2: p, stroke }));
            ticks.appendChild(el('text', { x: -__YLABEL__, y: p, dy: '0.32em', 'text-anchor': 'end' }, fmt(v, kind)));
          }
        }
      }

      function apply() {
        const { k, x: tx, y: ty } = state;
        const sx = (p) => k * p + tx, sy = (p) => k * p + ty;
        svg.querySelectorAll('.bubble').forEach((b) => {
          b.setAttribute('cx', sx(+b.dataset.px).toFixed(2));
          b.setAttribute('cy', sy(+b.dataset.py).toFixed(2));
        });
        svg.querySelectorAll('.store-label').forEach((t) => {
          t.setAttribute('x', sx(+t.dataset.px).toFixed(2));
          t.setAttribute('y', (sy(+t.dataset.py) - +t.dataset.r - __GAP__).toFixed(2));
        });
        const q = svg.querySelector('.quadrants');
        if (q) {
          const mx = sx(+q.dataset.mx).toFixed(2), my = sy(+q.dataset.my).toFixed(2);
          const v = q.querySelector('.quadrant-v'), h = q.querySelector('.quadrant-h');
          v.setAttribute('x1', mx); v.setAttribute('x2', mx);
          h.setAttribute('y1', my); h.setAttribute('y2', my);
          svg.querySelectorAll('.quadrant-label[data-side="right"]').forEach((t) => t.setAttribute('x', (+mx + __INSET__).toFixed(2)));
        }
        const x0 = invX((0 - tx) / k), x1 = invX((pw - tx) / k);
        const y0 = invY((ph - ty) / k), y1 = invY((0 - ty) / k);
        axis('x', xLog ? logTicks(x0, x1, __XTICKS__) : niceTicks(x0, x1, __XTICKS__), (v) => sx(baseX(v)), ds.xFormat);
        axis('y', niceTicks(y0, y1, __YTICKS__), (v) => sy(baseY(v)), ds.yFormat);
        const zoomed = k !== 1 || tx !== 0 || ty !== 0;
        svg.querySelectorAll('.viewport').forEach((g) => {
          if (zoomed) g.setAttribute('clip-path', 'url(#plot-clip)'); else g.removeAttribute('clip-path');
        });
        ds.k = k; ds.tx = tx; ds.ty = ty;
      }

      function pointer(ev) {
        const m = svg.getScreenCTM();
        if (!m) return { x: 0, y: 0 };
        const p = new DOMPoint(ev.clientX, ev.clientY).matrixTransform(m.inverse());
        return { x: p.x, y: p.y };
      }

      function place(tip, p) {
        const w = +tip.dataset.w, h = +tip.dataset.h;
        let x = p.x + __OX__;
        if (x + w > W) x = p.x - __OX__ - w;
        let y = p.y - __OY__;
        if (y + h > H) y = p.y - __OY__ - h;
        tip.setAttribute('transform', 'translate(' + Math.max(0, x).toFixed(1) + ',' + Math.max(0, y).toFixed(1) + ')');
      }

      svg.querySelectorAll('.bubble').forEach((b) => {
        const tip = svg.querySelector('.tooltip[data-for="' + b.id + '"]');
        b.addEventListener('mouseenter', (ev) => {
          b.parentNode.appendChild(b);
          b.setAttribute('fill-opacity', __HOVER_FILL__);
          b.setAttribute('stroke-width', __HOVER_STROKE__);
          if (tip) { place(tip, pointer(ev)); tip.setAttribute('visibility', 'visible'); }
        });
        b.addEventListener('mousemove', (ev) => { if (tip) place(tip, pointer(ev)); });
        b.addEventListener('mouseleave', () => {
          b.setAttribute('fill-opacity', __FILL__);
          b.setAttribute('stroke-width', __STROKE__);
          if (tip) tip.setAttribute('visibility', 'hidden');
        });
      });

      svg.addEventListener('wheel', (ev) => {
        ev.preventDefault();
        const p = pointer(ev);
        const fx = p.x - left, fy = p.y - top;
        const k = Math.min(__MAXZOOM__, Math.max(__MINZOOM__, state.k * Math.pow(2, -ev.deltaY * 0.002)));
        const f = k / state.k;
        state.x = fx - (fx - state.x) * f;
        state.y = fy - (fy - state.y) * f;
        state.k = k;
        apply();
      }, { passive: false });

      let drag = null;
      svg.addEventListener('pointerdown', (ev) => {
        if (ev.button !== 0) return;
        drag = { p: pointer(ev), x: state.x, y: state.y };
      });
      window.addEventListener('pointermove', (ev) => {
        if (!drag) return;
        const p = pointer(ev);
        state.x = drag.x + p.x - drag.p.x;
        state.y = drag.y + p.y - drag.p.y;
        apply();
      });
      window.addEventListener('pointerup', () => { drag = null; });
      svg.addEventListener('dblclick', () => { state.k = 1; state.x = 0; state.y = 0; apply(); });
    })();`

var interactionScript = strings.NewReplacer(
	"__TICK__", val(tickLength),
	"__XLABEL__", val(xLabelOffset),
	"__YLABEL__", val(yLabelOffset),
	"__GAP__", val(bubble.LabelGap),
	"__INSET__", val(bubble.QuadrantInset),
	"__XTICKS__", strconv.Itoa(bubble.XTicks),
	"__YTICKS__", strconv.Itoa(bubble.YTicks),
	"__OX__", val(bubble.TooltipOffsetX),
	"__OY__", val(bubble.TooltipOffsetY),
	"__HOVER_FILL__", val(bubble.HoverFillOpacity),
	"__HOVER_STROKE__", val(bubble.HoverStrokeWidth),
	"__FILL__", val(bubble.FillOpacity),
	"__STROKE__", val(bubble.StrokeWidth),
	"__MINZOOM__", val(MinZoom),
	"__MAXZOOM__", val(MaxZoom),
).Replace(interactionJS)

func renderInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", interactionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionScript)
}
