package render

// DefaultSVGTemplate is the built-in document template. Sections are stacked
// vertically; each section is wrapped in a translated group whose offset is
// the sum of the heights above it, all precomputed by the layout engine.
const DefaultSVGTemplate = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{width}}" height="{{totalHeight}}" viewBox="0 0 {{width}} {{totalHeight}}">
  <style>
    .contrib-wall { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif; }
    .contrib-name { font-size: 11px; fill: #57606a; text-anchor: middle; }
    .contrib-link { cursor: pointer; }
  </style>
  <g class="contrib-wall">
    <g class="contributors">
{{{contributors}}}
    </g>
    <g class="bots" transform="translate(0, {{botsOffset}})">
{{{bots}}}
    </g>
    <g class="collaborators" transform="translate(0, {{collaboratorsOffset}})">
{{{collaborators}}}
    </g>
  </g>
</svg>
`

// DefaultItemTemplate is the built-in per-user template: the avatar as a
// linked image with the login underneath.
const DefaultItemTemplate = `<a xlink:href="{{url}}" class="contrib-link" target="_blank" rel="nofollow" id="{{login}}">
  <image x="{{x}}" y="{{y}}" width="{{width}}" height="{{height}}" xlink:href="{{avatar}}"/>
  <text x="{{labelX}}" y="{{labelY}}" class="contrib-name">{{name}}</text>
</a>`
