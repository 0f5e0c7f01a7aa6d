package extract

// systemPrompt anchors the model's role. It is cacheable across chunks and
// runs, so it carries everything that never changes per request.
const systemPrompt = `You are a data extraction engine for event listings. You read raw text scraped from event listing websites and return structured JSON. You never add commentary, explanations, or markdown formatting to your output.`

// extractionPrompt is the per-chunk instruction. The field set must match
// the RawCandidate JSON tags exactly; the model is told to return ONLY the
// array so response cleanup stays trivial.
const extractionPrompt = `Extract every upcoming show listing from the text below.

Return ONLY a JSON array of objects. No prose, no code fences, no keys other than these:

  name, startDate, endDate, venueName, address, city, state, zipCode,
  entryFee, description, url, contactName, contactPhone, contactEmail,
  showHours

Rules:
- One object per distinct show. Use empty strings for fields the text does not provide.
- Copy dates exactly as written in the text; do not reformat them.
- Skip listings that are clearly in the past or marked as archived, cancelled, or postponed.
- If the text contains no show listings, return [].

Text:

`
