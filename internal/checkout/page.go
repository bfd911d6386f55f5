package checkout

import (
	"html/template"

	"github.com/Bluepen/wallet-topup/internal/gateway"
)

type pageData struct {
	Title        string
	ScriptPath   string
	CallbackBase string
	TokenHeader  string
	Options      gateway.Options
}

// The widget's callbacks report back to the session endpoints. The first report wins.
var checkoutPage = template.Must(template.New("checkout").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="{{.ScriptPath}}"></script>
<style>body{font-family:system-ui,sans-serif;display:flex;align-items:center;justify-content:center;height:100vh;margin:0}</style>
</head>
<body>
<p id="status">Opening secure checkout...</p>
<script>
(function () {
  var base = {{.CallbackBase}};
  var tokenHeader = {{.TokenHeader}};
  var token = window.location.hash.slice(1);
  var options = {{.Options}};
  var reported = false;
  var status = document.getElementById("status");

  function report(path, body, message) {
    if (reported) { return; }
    reported = true;
    var headers = {"Content-Type": "application/json"};
    headers[tokenHeader] = token;
    fetch(base + path, {
      method: "POST",
      headers: headers,
      body: JSON.stringify(body || {}),
      keepalive: true
    }).finally(function () { status.textContent = message; });
  }

  if (typeof Razorpay === "undefined") {
    report("/failed", {code: "SCRIPT_ERROR", description: "payment gateway unavailable"},
      "Payment gateway unavailable. You can close this window.");
    return;
  }

  options.handler = function (response) {
    report("/success", response, "Payment received. Return to your terminal.");
  };
  options.modal = {
    ondismiss: function () {
      report("/dismiss", null, "Payment cancelled. You can close this window.");
    }
  };

  var checkout = new Razorpay(options);
  checkout.on("payment.failed", function (response) {
    report("/failed", response.error, "Payment failed. You can close this window.");
    checkout.close();
  });
  checkout.open();
})();
</script>
</body>
</html>
`))
