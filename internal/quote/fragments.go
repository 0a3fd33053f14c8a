package quote

// The fragments below are injected verbatim into generated documents. They
// run in the browser that previews the quote and are never interpreted here.

// actionBarHTML goes right after <body> in the detailed document.
const actionBarHTML = `
    <div id="action-bar">
        <button id="copy-html-btn">Copy HTML</button>
        <button id="print-btn">Print / Save PDF</button>
    </div>`

// printScriptHTML goes right before </body> in the detailed document. Copy
// inlines every stylesheet rule into a clone of the page so the pasted HTML
// keeps its look without the <style> block.
const printScriptHTML = `
    <script>
        document.addEventListener('DOMContentLoaded', function () {
            var copyBtn = document.getElementById('copy-html-btn');
            var printBtn = document.getElementById('print-btn');

            if (printBtn) {
                printBtn.addEventListener('click', function () { window.print(); });
            }

            function inlinedHtml() {
                var clone = document.documentElement.cloneNode(true);
                Array.prototype.forEach.call(document.styleSheets, function (sheet) {
                    var rules;
                    try { rules = sheet.cssRules; } catch (e) {
                        console.warn('Skipping stylesheet:', e.message);
                        return;
                    }
                    Array.prototype.forEach.call(rules, function (rule) {
                        if (!rule.selectorText) { return; }
                        clone.querySelectorAll(rule.selectorText).forEach(function (el) {
                            el.setAttribute('style', rule.style.cssText + (el.getAttribute('style') || ''));
                        });
                    });
                });
                var bar = clone.querySelector('#action-bar');
                if (bar) { bar.remove(); }
                var script = clone.querySelector('script');
                if (script) { script.remove(); }
                return '<!DOCTYPE html>' + clone.outerHTML;
            }

            if (copyBtn) {
                copyBtn.addEventListener('click', function () {
                    copyBtn.textContent = 'Processing...';
                    copyBtn.disabled = true;
                    setTimeout(function () {
                        try {
                            navigator.clipboard.writeText(inlinedHtml())
                                .then(function () { alert('HTML with inlined styles copied to clipboard.'); })
                                .catch(function (err) {
                                    console.error('Clipboard write failed:', err);
                                    alert('Failed to copy. Please check console for errors.');
                                });
                        } catch (err) {
                            console.error('Inlining failed:', err);
                            alert('An error occurred while preparing the HTML.');
                        } finally {
                            copyBtn.textContent = 'Copy HTML';
                            copyBtn.disabled = false;
                        }
                    }, 50);
                });
            }
        });
    </script>`

// gmailControlsHTML goes right before </body> in the email document. Clicking
// the GST row toggles the totals between the GST-inclusive grand total and
// the offer without GST; the copy button puts the page source, with GST
// restored, on the clipboard.
const gmailControlsHTML = `
    <div id="action-bar-gth" style="position: fixed; bottom: 10px; left: 50%; transform: translateX(-50%); z-index: 10001; padding: 10px; background: rgba(0,0,0,0.7); border-radius: 8px;">
        <button id="btn-copy-gth" style="padding: 10px 20px; font-size: 16px; font-weight: bold; color: #333; background-color: #fffacd; border: 1px solid #ccc; border-radius: 5px; cursor: pointer;">Copy2G</button>
    </div>
    <script>
        function gthMoney(v) { return isNaN(v) ? '$0.00' : '$' + v.toFixed(2); }

        function gthSetTotals(root, amount) {
            root.querySelector('#gth-total').textContent = gthMoney(amount);
            root.querySelector('#gth-deposit').textContent = gthMoney(amount * 0.5);
            root.querySelector('#gth-balance').textContent = gthMoney(amount * 0.5);
        }

        document.addEventListener('DOMContentLoaded', function () {
            var gstRow = document.getElementById('gth-gst-row');
            var table = document.getElementById('gth-summary-table');
            var body = table ? table.querySelector('tbody') : null;
            if (!gstRow || !body || !document.getElementById('gth-total')) {
                console.warn('GTH: GST toggle elements missing.');
                return;
            }

            var ourOffer = parseFloat(body.dataset.ourOffer);
            var grandTotal = parseFloat(body.dataset.total);
            var gstVisible = true;

            gstRow.addEventListener('click', function () {
                gstVisible = !gstVisible;
                gstRow.style.display = gstVisible ? '' : 'none';
                gthSetTotals(document, gstVisible ? grandTotal : ourOffer);
            });
        });

        document.getElementById('btn-copy-gth').addEventListener('click', function () {
            var btn = this;
            var reset = function () { btn.textContent = 'Copy2G'; btn.disabled = false; };
            btn.textContent = 'Copying...';
            btn.disabled = true;

            try {
                var clone = document.documentElement.cloneNode(true);
                ['#action-bar-gth', 'script', 'title'].forEach(function (sel) {
                    var el = clone.querySelector(sel);
                    if (el) { el.remove(); }
                });

                var row = clone.querySelector('#gth-gst-row');
                if (row && row.style.display === 'none') {
                    row.style.display = '';
                    var body = clone.querySelector('#gth-summary-table tbody');
                    gthSetTotals(clone, parseFloat(body.dataset.total));
                }

                navigator.clipboard.writeText(clone.outerHTML)
                    .then(function () { alert('Quote HTML Source copied to clipboard!'); reset(); })
                    .catch(function (err) {
                        console.error('Failed to copy HTML source: ', err);
                        alert('Error: Could not copy to clipboard. See console.');
                        reset();
                    });
            } catch (err) {
                console.error('Error preparing HTML source copy: ', err);
                alert('An error occurred during copy. See console.');
                reset();
            }
        });
    </script>`
