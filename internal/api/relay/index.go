package relay

const indexPage = `<!doctype html>
<html>
  <head>
    <title>Flomo relay</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 40px; line-height: 1.6; }
      pre { background: #f6f8fa; padding: 15px; border-radius: 5px; }
      .endpoint { font-weight: bold; color: #0366d6; }
    </style>
  </head>
  <body>
    <h1>Flomo relay</h1>
    <p>Forwards notes to the Flomo incoming webhook.</p>

    <h2>Endpoints</h2>
    <p><span class="endpoint">GET /test</span> - check that the relay is up</p>
    <p><span class="endpoint">POST /write_note</span> - send a note to Flomo</p>

    <h2>Example</h2>
    <pre>
curl -X POST http://localhost:12345/write_note \
    -H "Content-Type: application/json" \
    -d '{"content": "A note sent through the relay\n\nSupports **Markdown**\n- item 1\n- item 2\n\n#inbox"}'
    </pre>
  </body>
</html>
`
