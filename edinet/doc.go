// Package edinet provides a client for the EDINET disclosure API (v2)
// operated by Japan's Financial Services Agency.
//
// # Usage
//
// Create a client with your subscription key:
//
//	client, err := edinet.NewClient("your-api-key",
//		edinet.WithTimeout(30*time.Second),
//		edinet.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Documents filed on a date
//	list, err := client.ListDocuments(ctx, date, edinet.ModeWithDocuments)
//
//	// One document as PDF
//	pdf, err := client.FetchDocument(ctx, "S100ABCD", edinet.FormatPDF)
//
// # Error Handling
//
// Arguments are validated before any request is sent; failures are
// *ValidationError and match ErrInvalidInput.
//
// Every non-200 response is a *ResponseError carrying the status code and
// raw body. All of them match ErrResponseNot200; 400, 401, 404 and 500
// additionally match ErrBadRequest, ErrInvalidAPIKey, ErrNotFound and
// ErrServerError:
//
//	if errors.Is(err, edinet.ErrInvalidAPIKey) {
//		// Handle auth failure
//	}
//	var respErr *edinet.ResponseError
//	if errors.As(err, &respErr) {
//		fmt.Println(respErr.StatusCode, respErr.Body)
//	}
//
// Transport errors are returned as reported by the HTTP client. Nothing is
// retried or cached.
package edinet
