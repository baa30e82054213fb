package service

// htmlReportTemplate renders one or more snippet matches. Each result shows
// the winning candidate and a bar per ranked candidate.
const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>srcmatch report - {{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            background-color: #f5f5f5;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 20px; }
        .header, .result {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            margin-bottom: 24px;
        }
        .header h1 { font-size: 2em; color: #1a1a1a; }
        .header .meta { color: #666; font-size: 0.9em; }
        .best { display: flex; align-items: center; gap: 24px; margin: 16px 0; }
        .gauge {
            width: 96px; height: 96px; border-radius: 50%;
            display: flex; align-items: center; justify-content: center;
            font-size: 1.4em; font-weight: bold; color: white;
        }
        .best .id { font-family: monospace; font-size: 1.2em; word-break: break-all; }
        .warning { color: #b26a00; margin: 4px 0; }
        table { width: 100%; border-collapse: collapse; margin-top: 12px; }
        th, td { text-align: left; padding: 8px; border-bottom: 1px solid #eee; }
        th { background: #fafafa; font-weight: 600; }
        td.id { font-family: monospace; word-break: break-all; }
        td.num { text-align: right; font-variant-numeric: tabular-nums; }
        .bar { background: #eee; border-radius: 4px; height: 10px; width: 200px; }
        .bar span { display: block; height: 10px; border-radius: 4px; }
        .winner { background: #f0fbf4; }
        .footer { text-align: center; color: #888; font-size: 0.85em; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>Snippet Attribution Report</h1>
        <p class="meta">{{.Title}} &middot; {{.TotalCandidates}} candidates &middot; generated {{.GeneratedAt}} &middot; srcmatch {{.Version}} &middot; {{.DurationMs}}ms</p>
    </div>
    {{range .Results}}
    <div class="result">
        <h2>{{.Name}}</h2>
        <p class="meta">{{.SnippetTokens}} tokens &middot; vocabulary {{.VocabularySize}}</p>
        <div class="best">
            <div class="gauge" style="background: {{.Color}}">{{printf "%.0f" .Percent}}%</div>
            <div>
                <div class="id">{{.BestMatch}}</div>
                <div>{{.Confidence}} confidence &middot; score {{printf "%.4f" .BestScore}}</div>
            </div>
        </div>
        {{range .Warnings}}<p class="warning">! {{.}}</p>{{end}}
        {{if .Rows}}
        <table>
            <thead><tr><th>#</th><th>Candidate</th><th>Score</th><th></th>{{if .ShowTokens}}<th>Tokens</th>{{end}}</tr></thead>
            <tbody>
            {{$showTokens := .ShowTokens}}
            {{range .Rows}}
            <tr{{if .Winner}} class="winner"{{end}}>
                <td class="num">{{.Rank}}</td>
                <td class="id">{{.ID}}</td>
                <td class="num">{{printf "%.4f" .Score}}</td>
                <td><div class="bar"><span style="width: {{printf "%.0f" .Percent}}%; background: {{.Color}}"></span></div></td>
                {{if $showTokens}}<td class="num">{{.Tokens}}</td>{{end}}
            </tr>
            {{end}}
            </tbody>
        </table>
        {{end}}
    </div>
    {{end}}
    <p class="footer">Scores are TF-IDF cosine similarities between the snippet and each candidate.</p>
</div>
</body>
</html>
`
