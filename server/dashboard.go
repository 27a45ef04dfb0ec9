package server

// dashboardHTML is the operator dashboard served at /. It is deliberately
// framework-free: three buttons and a status panel polling /status.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Venue Scraper</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .container { max-width: 800px; margin: 0 auto; }
        .panel { padding: 20px; border-radius: 5px; margin: 20px 0; }
        .success { background-color: #d4edda; border: 1px solid #c3e6cb; }
        .error { background-color: #f8d7da; border: 1px solid #f5c6cb; }
        .info { background-color: #cce7ff; border: 1px solid #b3d9ff; }
        button { padding: 10px 20px; margin: 10px 10px 10px 0; background: #007bff; color: white; border: none; border-radius: 5px; cursor: pointer; }
        button:hover { background: #0056b3; }
        button:disabled { background: #9fc3e8; cursor: wait; }
        table { border-collapse: collapse; }
        td { padding: 4px 16px 4px 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Venue Scraper</h1>
        <div class="info panel">
            <p>Scrapes sports venue data from KheloMore, city by city.</p>
            <p><strong>Fields collected per venue:</strong> name, price, timing,
            address, rating and rater count, about, available sports,
            highlights, amenities, offers, plus facilities and venue rules
            read from their pop-up dialogs.</p>
        </div>

        <button id="start" onclick="startScraping()">Start Scraping</button>
        <button onclick="refreshStatus()">Check Status</button>
        <button onclick="window.location='/download_csv'">Download CSV</button>

        <div id="message"></div>
        <div class="panel" style="background:#f8f9fa">
            <table>
                <tr><td>Run state</td><td id="running">&ndash;</td></tr>
                <tr><td>Total venues</td><td id="total">&ndash;</td></tr>
                <tr><td>Cities scraped</td><td id="scraped">&ndash;</td></tr>
                <tr><td>Cities failed</td><td id="failed">&ndash;</td></tr>
                <tr><td>Last updated</td><td id="updated">&ndash;</td></tr>
            </table>
        </div>

        <script>
            function show(kind, text) {
                document.getElementById('message').innerHTML =
                    '<div class="' + kind + ' panel">' + text + '</div>';
            }

            async function startScraping() {
                const btn = document.getElementById('start');
                btn.disabled = true;
                show('info', 'Scraping started. This takes a while; progress updates below.');
                try {
                    const response = await fetch('/start_scraping', {method: 'POST'});
                    const result = await response.json();
                    if (response.ok) {
                        show('success', 'Done: ' + result.total_venues + ' venues across ' +
                            result.scraped_cities.length + ' cities.');
                    } else {
                        show('error', result.error || 'Scraping failed');
                    }
                } catch (error) {
                    show('error', 'Error: ' + error.message);
                } finally {
                    btn.disabled = false;
                    refreshStatus();
                }
            }

            async function refreshStatus() {
                try {
                    const response = await fetch('/status');
                    const s = await response.json();
                    document.getElementById('running').textContent = s.running ? 'running' : 'idle';
                    document.getElementById('total').textContent = s.total_venues;
                    document.getElementById('scraped').textContent = s.scraped_cities.length;
                    document.getElementById('failed').textContent = s.failed_cities.length;
                    document.getElementById('updated').textContent = s.last_updated;
                } catch (error) { /* leave panel as-is */ }
            }

            refreshStatus();
            setInterval(refreshStatus, 5000);
        </script>
    </div>
</body>
</html>
`
