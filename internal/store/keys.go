package store

// TagsKey is the single durable slot holding the whole tag collection.
// It is versionless: the value is always a JSON array of tags in insertion order.
const TagsKey = "tags"
