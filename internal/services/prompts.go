package services

import (
	"fmt"
	"strings"
)

func storyList(stories []string) string {
	var b strings.Builder
	for i, s := range stories {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}

func classifyPrompt(stories []string) string {
	return fmt.Sprintf(`You are a requirements analyst. Classify each of the following user stories as either a functional or a non-functional requirement.

User stories:
%s
Respond with a JSON object that follows this exact structure:
{
  "Functional": ["story text", ...],
  "NonFunctional": ["story text", ...]
}

Guidelines:
- Copy every story text exactly as given
- Put each story in exactly one list
- Functional stories describe what the system does; non-functional stories describe qualities such as performance, security, availability or usability

Respond ONLY with the JSON inside a `+"```json"+` code block.`, storyList(stories))
}

func useCasePrompt(stories []string) string {
	return fmt.Sprintf(`Here are the software requirements:
%s
STEP 1: List every actor, ignoring system actors. Pay attention to actors that inherit from other actors.
STEP 2: List every use case.
STEP 3: Identify every relationship and its type:
- Association (an actor takes part in a use case)
- Include (use case A always invokes use case B)
- Extend (use case A optionally extends use case B)
- Generalization (an actor inherits from another actor); do not miss these

Respond with a JSON object that follows this exact structure:
{
  "actors": ["Actor1", "Actor2", ...],
  "use_cases": ["UseCase1", "UseCase2", ...],
  "relationships": [["Entity1", "Entity2", "RelationshipType"], ...]
}

Respond ONLY with the JSON inside a `+"```json"+` code block.`, storyList(stories))
}

const classSchema = `{
  "classes": [
    {
      "name": "ClassName",
      "attributes": ["attribute1", "attribute2", ...],
      "methods": ["method1()", "method2()", ...]
    }
  ],
  "relationships": [["Class1", "Class2", "RelationshipType", "Multiplicity"], ...]
}`

const classGuidelines = `STEP 1: List every domain class, ignoring framework or system classes.
STEP 2: List the attributes and methods of each class.
STEP 3: Identify every relationship between classes and its type:
- Association (Class1 is linked to Class2)
- Aggregation (Class1 contains Class2)
- Composition (Class1 contains Class2 and Class2 cannot exist without Class1)
- Inheritance (Class1 inherits from Class2)
STEP 4: For associations, give the multiplicity as "low-high" using a single hyphen:
  "0-1" zero or one, "1-1" exactly one, "0-*" zero or many, "1-*" one or many, "m-n" at least m and at most n.
  Leave the multiplicity empty for other relationship types.`

func classPrompt(stories []string) string {
	return fmt.Sprintf(`Here are the software requirements:
%s
%s

Respond with a JSON object that follows this exact structure:
%s

Respond ONLY with the JSON inside a `+"```json"+` code block.`, storyList(stories), classGuidelines, classSchema)
}

const sequenceSchema = `{
  "objects": ["Object1", "Object2", ...],
  "messages": [["Sender", "Receiver", "message label"], ...]
}`

func sequencePrompt(stories []string) string {
	return fmt.Sprintf(`Here are the software requirements:
%s
STEP 1: List every participant (actors, boundary objects, controllers, entities) in the main interaction.
STEP 2: List the messages exchanged between participants in the order they happen.

Respond with a JSON object that follows this exact structure:
%s

Respond ONLY with the JSON inside a `+"```json"+` code block.`, storyList(stories), sequenceSchema)
}

func deploymentPrompt(stories []string) string {
	return fmt.Sprintf(`Here are the non-functional requirements of a software system:
%s
STEP 1: List the deployment nodes (servers, devices, cloud services) needed to satisfy them.
STEP 2: List the services or artifacts hosted on each node.
STEP 3: List the communication paths between nodes, with the protocol as an optional label.

Respond with a JSON object that follows this exact structure:
{
  "components": [{"name": "NodeName", "services": ["Service1", ...]}],
  "relationships": [["Node1", "Node2", "protocol"], ["Node1", "Node3"], ...]
}

Respond ONLY with the JSON inside a `+"```json"+` code block.`, storyList(stories))
}

func functionalPrompt(stories []string) string {
	return fmt.Sprintf(`Here are the functional requirements of a software system:
%s
Produce both a class diagram and a sequence diagram of the main interaction.

For the class diagram:
%s

For the sequence diagram, list the participants and the messages between them in the order they happen.

Respond with a JSON object that follows this exact structure:
{
  "class": %s,
  "sequence": %s
}

Respond ONLY with the JSON inside a `+"```json"+` code block.`, storyList(stories), classGuidelines, classSchema, sequenceSchema)
}
