package main

const timeoutBody = `<!DOCTYPE html>
<html lang="en">
<head><title>Timeout</title></head>
<body>
<h1>Timeout</h1>
<p>The request took too long. <a href="">Retry</a></p>
</body>
</html>
`
