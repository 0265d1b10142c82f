package document

// Sample is the document shown when the user has not supplied one yet.
const Sample = `{
  "user": {
    "name": "Alice",
    "address": {
      "city": "Wonderland",
      "zip": 12345
    }
  },
  "items": [
    { "name": "item1" },
    { "name": "item2" }
  ]
}
`
