package config

const DefaultTranslatePrompt = `You are a patient language tutor. Translate the following %s text into English and break it into vocabulary entries.

Text:
%s

Respond ONLY with a JSON object of this shape:
{
  "sentence": "<natural English translation>",
  "words": [
    {
      "fi": "<word exactly as it appears in the text>",
      "en": "<meaning in this sentence>",
      "en_base": "<dictionary meaning>",
      "type": "<part of speech>",
      "original_word": "<dictionary form>",
      "pronunciation": "<pronunciation guide>",
      "comment": "<short grammar note>"
    }
  ],
  "confidence": <0-100>
}`

const DefaultReviewPrompt = `You are reviewing a translation of a %s text into English.

Original text:
%s

First translation:
%s

Correct any mistakes. For every word add "sentenceText" with the exact words of your English sentence it maps to. Rate the translation.
Respond ONLY with a JSON object of the same shape as the first translation plus:
  "confidence": <0-100>,
  "confidenceDetails": {"accuracy": <0-100>, "completeness": <0-100>, "naturalness": <0-100>, "grammar": <0-100>, "concerns": ["..."]}`
