// 17 Oct 2026

package viewer

import (
	"errors"
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://3Dmol.org/build/3Dmol-min.js"></script>
</head>
<body>
<p id="caption"></p>
<div id="viewer" style="width: {{.Width}}px; height: {{.Height}}px; position: relative;"></div>
<p>
<label for="pick">Structure</label>
<input type="range" id="pick" min="0" max="{{.Last}}" value="0">
<span id="count"></span>
</p>
<script>
const views = {{.Views}};
const viewer = $3Dmol.createViewer("viewer", {backgroundColor: "white"});
function show(i) {
	const v = views[i];
	document.getElementById("caption").textContent = v.caption;
	document.getElementById("count").textContent = (i + 1) + " / " + views.length;
	viewer.clear();
	$3Dmol.download("pdb:" + v.id, viewer, {}, function () {
		for (const s of v.steps) {
			switch (s.op) {
			case "setStyle": viewer.setStyle(s.sel, s.style); break;
			case "zoomTo": viewer.zoomTo(s.sel); break;
			case "zoom": viewer.zoom(s.args[0], s.args[1]); break;
			case "surface": viewer.addSurface($3Dmol.SurfaceType.MS, s.style, s.sel); break;
			}
		}
		viewer.render();
	});
}
document.getElementById("pick").addEventListener("change", function (e) {
	show(parseInt(e.target.value, 10));
});
show(0);
</script>
</body>
</html>
`))

// Write writes the page as html.
func (p *Page) Write(w io.Writer) error {
	if p == nil || len(p.Views) == 0 {
		return errors.New("empty page")
	}
	data := struct {
		*Page
		Last int
	}{p, len(p.Views) - 1}
	return pageTmpl.Execute(w, data)
}
